package worker

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
)

type fakeWorkerStore struct {
	workers map[int64]models.Worker
}

var errUnknownWorker = errors.New("worker not found")
var errNotEnough = errors.New("insufficient funds")

func (s *fakeWorkerStore) GetWorkerByTelegramID(ctx context.Context, telegramID int64) (models.Worker, error) {
	w, ok := s.workers[telegramID]
	if !ok {
		return models.Worker{}, errUnknownWorker
	}
	return w, nil
}

func (s *fakeWorkerStore) LockDeposit(ctx context.Context, telegramID int64, deposit float64) (float64, error) {
	w, ok := s.workers[telegramID]
	if !ok {
		return 0, errUnknownWorker
	}
	if w.BalanceEGP < deposit {
		return 0, errNotEnough
	}
	w.BalanceEGP -= deposit
	s.workers[telegramID] = w
	return w.BalanceEGP, nil
}

func storeWith(telegramID int64, balance float64) *fakeWorkerStore {
	return &fakeWorkerStore{workers: map[int64]models.Worker{
		telegramID: {ID: 1, TelegramID: telegramID, Name: "Mostafa", BalanceEGP: balance, IsVerified: true},
	}}
}

func TestParseJobContextDefaults(t *testing.T) {
	jc := ParseJobContext(url.Values{})
	if jc.OrderID != constants.DefaultJobOrderID {
		t.Errorf("OrderID = %q, want %q", jc.OrderID, constants.DefaultJobOrderID)
	}
	if jc.PriceEGP != constants.DefaultJobPrice {
		t.Errorf("PriceEGP = %v, want %v", jc.PriceEGP, constants.DefaultJobPrice)
	}
	if jc.Deposit() != constants.DefaultJobPrice*constants.DepositShare {
		t.Errorf("Deposit = %v", jc.Deposit())
	}
}

func TestParseJobContextFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("orderId", "42")
	q.Set("price", "300")
	q.Set("clientPhone", "+201012345678")

	jc := ParseJobContext(q)
	if jc.OrderID != "42" || jc.PriceEGP != 300 || jc.ClientPhone != "+201012345678" {
		t.Errorf("JobContext = %+v", jc)
	}
	if jc.Deposit() != 150 {
		t.Errorf("Deposit = %v, want 150", jc.Deposit())
	}
}

func TestParseJobContextBadPrice(t *testing.T) {
	q := url.Values{}
	q.Set("price", "abc")
	if jc := ParseJobContext(q); jc.PriceEGP != constants.DefaultJobPrice {
		t.Errorf("PriceEGP = %v", jc.PriceEGP)
	}
}

func TestLoadUnknownWorker(t *testing.T) {
	p := NewPortal(storeWith(100, 0), ParseJobContext(url.Values{}))
	if err := p.Load(context.Background(), 999); err == nil {
		t.Fatal("ожидалась ошибка загрузки")
	}
	if p.State() != StateError {
		t.Errorf("состояние = %q, want %q", p.State(), StateError)
	}
}

func TestTakeJobLocksDeposit(t *testing.T) {
	q := url.Values{}
	q.Set("orderId", "42")
	q.Set("price", "300")
	q.Set("clientPhone", "+201012345678")

	p := NewPortal(storeWith(100, 200), ParseJobContext(q))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if !p.CanAfford() {
		t.Fatal("баланса 200 должно хватать на залог 150")
	}

	link, err := p.TakeJob(context.Background())
	if err != nil {
		t.Fatalf("TakeJob: %v", err)
	}
	if p.State() != StateJobActive {
		t.Errorf("состояние = %q, want %q", p.State(), StateJobActive)
	}
	if p.Balance() != 50 {
		t.Errorf("баланс = %v, want 50", p.Balance())
	}
	if !strings.Contains(link, "wa.me/201012345678") {
		t.Errorf("ссылка не ведёт на клиента: %s", link)
	}
	if !strings.Contains(link, "42") {
		t.Errorf("в сообщении нет номера заказа: %s", link)
	}
}

func TestTakeJobInsufficientFunds(t *testing.T) {
	q := url.Values{}
	q.Set("price", "300")

	p := NewPortal(storeWith(100, 100), ParseJobContext(q))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if p.CanAfford() {
		t.Fatal("баланса 100 не должно хватать на залог 150")
	}

	if _, err := p.TakeJob(context.Background()); !errors.Is(err, errNotEnough) {
		t.Fatalf("TakeJob: %v, want insufficient funds", err)
	}
	if p.State() != StateReady {
		t.Errorf("состояние = %q, want %q", p.State(), StateReady)
	}
	if p.Balance() != 100 {
		t.Errorf("баланс изменился при отказе: %v", p.Balance())
	}
}

func TestTakeJobBeforeLoad(t *testing.T) {
	p := NewPortal(storeWith(100, 500), ParseJobContext(url.Values{}))
	if _, err := p.TakeJob(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("TakeJob: %v, want ErrNotReady", err)
	}
}

func TestFinishJobReturnsOperatorLink(t *testing.T) {
	q := url.Values{}
	q.Set("orderId", "42")
	q.Set("price", "100")

	p := NewPortal(storeWith(100, 500), ParseJobContext(q))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if _, err := p.TakeJob(context.Background()); err != nil {
		t.Fatal(err)
	}

	link, err := p.FinishJob()
	if err != nil {
		t.Fatalf("FinishJob: %v", err)
	}
	if !strings.Contains(link, "wa.me/"+constants.RechargeContactPhone) {
		t.Errorf("ссылка не ведёт оператору: %s", link)
	}
	if p.State() != StateReady {
		t.Errorf("состояние после завершения = %q", p.State())
	}
	if p.ClientLink() != "" {
		t.Error("ссылка на клиента не очищена")
	}
}

func TestFinishJobWithoutActiveJob(t *testing.T) {
	p := NewPortal(storeWith(100, 500), ParseJobContext(url.Values{}))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	if _, err := p.FinishJob(); !errors.Is(err, ErrNoActiveJob) {
		t.Errorf("FinishJob: %v, want ErrNoActiveJob", err)
	}
}

func TestSyncUpdatesBalance(t *testing.T) {
	p := NewPortal(storeWith(100, 200), ParseJobContext(url.Values{}))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}

	updates := make(chan models.Worker)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		p.Sync(ctx, updates)
		close(done)
	}()

	updates <- models.Worker{TelegramID: 999, BalanceEGP: 1}
	updates <- models.Worker{TelegramID: 100, BalanceEGP: 750, IsVerified: true}
	close(updates)
	<-done

	if p.Balance() != 750 {
		t.Errorf("баланс после синхронизации = %v, want 750", p.Balance())
	}
}

func TestSyncStopsOnContextCancel(t *testing.T) {
	p := NewPortal(storeWith(100, 200), ParseJobContext(url.Values{}))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		p.Sync(ctx, make(chan models.Worker))
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sync не завершился после отмены контекста")
	}
}

func TestRechargeLink(t *testing.T) {
	p := NewPortal(storeWith(100, 0), ParseJobContext(url.Values{}))
	if err := p.Load(context.Background(), 100); err != nil {
		t.Fatal(err)
	}
	link := p.RechargeLink()
	if !strings.Contains(link, constants.RechargeContactPhone) {
		t.Errorf("ссылка без номера оператора: %s", link)
	}
	if !strings.Contains(link, "100") {
		t.Errorf("в сообщении нет ID исполнителя: %s", link)
	}
}
