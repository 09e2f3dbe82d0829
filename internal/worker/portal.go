package worker

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/constants"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/formatters"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/models"
	"github.com/sgurzheyev/Clean-Egypt-co/internal/utils"
)

var (
	// ErrNotReady — попытка взять заказ до загрузки профиля или из состояния ошибки.
	ErrNotReady = errors.New("портал не готов")
	// ErrNoActiveJob — попытка завершить заказ, которого нет.
	ErrNoActiveJob = errors.New("нет активного заказа")
)

// Состояния портала исполнителя.
const (
	StateLoading   = "loading"
	StateError     = "error"
	StateReady     = "ready"
	StateJobActive = "job_active"
)

// WorkerStore — операции с балансом исполнителя.
type WorkerStore interface {
	GetWorkerByTelegramID(ctx context.Context, telegramID int64) (models.Worker, error)
	LockDeposit(ctx context.Context, telegramID int64, deposit float64) (float64, error)
}

// JobContext — параметры заказа, с которыми исполнитель открыл портал.
// Приходят в query-строке ссылки из уведомления.
type JobContext struct {
	OrderID     string  `json:"order_id"`
	PriceEGP    float64 `json:"price_egp"`
	ClientPhone string  `json:"client_phone"`
}

// ParseJobContext читает контекст заказа из query-параметров.
// Без orderId подставляется "NEW", без цены — цена по умолчанию.
func ParseJobContext(q url.Values) JobContext {
	jc := JobContext{
		OrderID:     constants.DefaultJobOrderID,
		PriceEGP:    constants.DefaultJobPrice,
		ClientPhone: q.Get("clientPhone"),
	}
	if id := q.Get("orderId"); id != "" {
		jc.OrderID = id
	}
	if raw := q.Get("price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil && price > 0 {
			jc.PriceEGP = price
		}
	}
	return jc
}

// Deposit — залог за взятие заказа: половина цены.
func (jc JobContext) Deposit() float64 {
	return jc.PriceEGP * constants.DepositShare
}

// Portal — сессия исполнителя: баланс, статус, активный заказ.
// Потокобезопасен: баланс обновляется и из HTTP-запросов, и из
// подписки на изменения в БД.
type Portal struct {
	store WorkerStore
	job   JobContext

	mu         sync.Mutex
	state      string
	worker     models.Worker
	loadErr    error
	clientLink string
}

func NewPortal(store WorkerStore, job JobContext) *Portal {
	return &Portal{store: store, job: job, state: StateLoading}
}

// Load загружает профиль исполнителя. Неизвестный telegram_id переводит
// портал в состояние ошибки, работа с ним дальше невозможна.
func (p *Portal) Load(ctx context.Context, telegramID int64) error {
	w, err := p.store.GetWorkerByTelegramID(ctx, telegramID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = StateError
		p.loadErr = err
		return err
	}
	p.worker = w
	p.state = StateReady
	return nil
}

// State возвращает текущее состояние портала.
func (p *Portal) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Balance возвращает текущий баланс в EGP.
func (p *Portal) Balance() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.worker.BalanceEGP
}

// Job возвращает контекст заказа.
func (p *Portal) Job() JobContext {
	return p.job
}

// ClientLink — wa.me-ссылка на клиента после взятия заказа.
func (p *Portal) ClientLink() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.clientLink
}

// TakeJob списывает залог и переводит портал в состояние активного заказа.
// При нехватке средств баланс и состояние не меняются, возвращается
// db.ErrInsufficientFunds.
func (p *Portal) TakeJob(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.state != StateReady {
		p.mu.Unlock()
		return "", ErrNotReady
	}
	telegramID := p.worker.TelegramID
	deposit := p.job.Deposit()
	p.mu.Unlock()

	// Проверка баланса и списание — одна транзакция на стороне БД,
	// локальный баланс может быть устаревшим.
	newBalance, err := p.store.LockDeposit(ctx, telegramID, deposit)
	if err != nil {
		return "", err
	}

	link := utils.WhatsAppLink(p.job.ClientPhone, formatters.FormatTakeJobMessage(p.job.OrderID, deposit))

	p.mu.Lock()
	p.worker.BalanceEGP = newBalance
	p.state = StateJobActive
	p.clientLink = link
	p.mu.Unlock()

	return link, nil
}

// FinishJob завершает активный заказ и возвращает wa.me-ссылку оператору
// для проверки работы и возврата залога.
func (p *Portal) FinishJob() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateJobActive {
		return "", ErrNoActiveJob
	}
	p.state = StateReady
	p.clientLink = ""
	return utils.WhatsAppLink(constants.RechargeContactPhone, formatters.FormatFinishJobMessage(p.job.OrderID)), nil
}

// RechargeLink — wa.me-ссылка на пополнение баланса у оператора.
func (p *Portal) RechargeLink() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return utils.WhatsAppLink(constants.RechargeContactPhone, formatters.FormatRechargeMessage(p.worker.TelegramID))
}

// Sync применяет обновления баланса из подписки на БД, пока канал
// не закрыт или контекст не отменён. Обновления чужих исполнителей
// игнорируются.
func (p *Portal) Sync(ctx context.Context, updates <-chan models.Worker) {
	for {
		select {
		case <-ctx.Done():
			return
		case w, ok := <-updates:
			if !ok {
				return
			}
			p.mu.Lock()
			if p.state != StateLoading && p.state != StateError && w.TelegramID == p.worker.TelegramID {
				p.worker.BalanceEGP = w.BalanceEGP
				p.worker.IsVerified = w.IsVerified
				logger.Log.Debug("worker balance synced",
					zap.Int64("telegram_id", w.TelegramID),
					zap.Float64("balance_egp", w.BalanceEGP))
			}
			p.mu.Unlock()
		}
	}
}

// CanAfford сообщает, хватает ли текущего баланса на залог.
func (p *Portal) CanAfford() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.worker.BalanceEGP >= p.job.Deposit()
}
