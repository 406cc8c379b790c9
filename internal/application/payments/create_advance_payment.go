package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benettihome/operaciones-api/internal/application/dto"
	"github.com/benettihome/operaciones-api/internal/domain"
	"github.com/benettihome/operaciones-api/internal/domain/entity"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

// CreateAdvancePaymentUseCase alta de pagos de anticipo: el registro nace
// PENDIENTE con consecutivo max+1 dentro de su cuenta por cobrar. El umbral
// se evalúa después, al marcarlo PAGADO.
type CreateAdvancePaymentUseCase struct {
	advanceRepo    repository.AdvancePaymentRepository
	receivableRepo repository.AccountsReceivableRepository
	log            *logger.Logger
}

// NewCreateAdvancePaymentUseCase construye el caso de uso.
func NewCreateAdvancePaymentUseCase(
	advanceRepo repository.AdvancePaymentRepository,
	receivableRepo repository.AccountsReceivableRepository,
	log *logger.Logger,
) *CreateAdvancePaymentUseCase {
	return &CreateAdvancePaymentUseCase{
		advanceRepo:    advanceRepo,
		receivableRepo: receivableRepo,
		log:            log,
	}
}

// Execute valida la cuenta y persiste el pago PENDIENTE.
func (uc *CreateAdvancePaymentUseCase) Execute(in dto.CreateAdvancePaymentRequest) (*entity.AdvancePaymentRecord, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrValidation
	}
	currency := entity.Currency(in.Currency)
	switch currency {
	case entity.CurrencyEUR, entity.CurrencyUSD, entity.CurrencyMXN:
	default:
		return nil, domain.ErrValidation
	}

	receivable, err := uc.receivableRepo.GetByID(in.AccountsReceivableID)
	if err != nil {
		return nil, err
	}
	if receivable == nil {
		return nil, domain.ErrNotFound
	}

	maxConsecutive, err := uc.advanceRepo.MaxConsecutive(receivable.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &entity.AdvancePaymentRecord{
		AccountsReceivableID: receivable.ID,
		ConsecutiveID:        maxConsecutive + 1,
		Amount:               in.Amount,
		Currency:             currency,
		Method:               in.Method,
		Status:               entity.PaymentStatusPendiente,
		DocumentID:           in.DocumentID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.advanceRepo.Create(record); err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("accountsReceivableId", receivable.ID).
		Int("consecutiveId", record.ConsecutiveID).
		Str("currency", in.Currency).
		Msg("pago de anticipo registrado")
	return record, nil
}
