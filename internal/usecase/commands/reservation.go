package commands

import (
	"context"
	"log/slog"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

var (
	ErrReservationNotFound   = errs.New("No se encontró una reserva con esos datos.")
	ErrRestaurantUnavailable = errs.New("El restaurante no existe o no está disponible.")
)

type CreateReservationInput struct {
	RestaurantID  uuid.UUID
	Date          string
	CustomerName  string
	CustomerEmail string
	CustomerDNI   string
}

type CreateReservationResult struct {
	ReservationID uuid.UUID
	Code          string
}

type UpdateReservationDateInput struct {
	ID   uuid.UUID
	DNI  string
	Code string
	Date string
}

type ReservationCredentialInput struct {
	ID   uuid.UUID
	DNI  string
	Code string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	UpdateDate(ctx context.Context, in UpdateReservationDateInput) error
	SoftDelete(ctx context.Context, in ReservationCredentialInput) error
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	codes reservation.CodeGenerator
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, codes reservation.CodeGenerator) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk, codes: codes}
}

func (uc *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	date, err := reservation.ParseDate(in.Date)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	customer, err := reservation.NewCustomer(in.CustomerName, in.CustomerEmail, in.CustomerDNI)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var created *reservation.Reservation
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rest, derr := tx.Restaurants().FindByIDForShare(ctx, in.RestaurantID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRestaurantUnavailable
			}
			return derr
		}
		if !rest.AcceptsReservations() {
			return ErrRestaurantUnavailable
		}

		if derr = tx.Reservations().LockDate(ctx, date); derr != nil {
			return derr
		}
		occ, derr := tx.Reservations().CountActive(ctx, rest.ID(), date)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		res, derr := reservation.NewReservation(reservation.NewReservationParams{
			RestaurantID: rest.ID(),
			Date:         date,
			Customer:     customer,
		}, occ, uc.codes, now)
		if derr != nil {
			return derr
		}
		if derr = tx.Reservations().Create(ctx, res); derr != nil {
			return derr
		}
		logAdmission(ctx, "create", occ)
		if derr = enqueueNotice(ctx, tx, shared.TopicReservationCreated, shared.NewReservationNotice(res, now)); derr != nil {
			return derr
		}
		created = res
		return nil
	})
	if err != nil {
		logRejection(ctx, "create", in.RestaurantID, date, err)
		return nil, err
	}

	return &CreateReservationResult{
		ReservationID: created.ID(),
		Code:          created.Code().String(),
	}, nil
}

func (uc *reservationCommandsImpl) UpdateDate(ctx context.Context, in UpdateReservationDateInput) error {
	date, err := reservation.ParseDate(in.Date)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	cred, err := reservation.NewCredential(in.DNI, in.Code)
	if err != nil {
		// a malformed credential can never match; keep the answer uniform
		return ErrReservationNotFound
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := uc.findByCredential(ctx, tx, in.ID, cred)
		if derr != nil {
			return derr
		}

		if derr = tx.Reservations().LockDate(ctx, date); derr != nil {
			return derr
		}
		// The reservation's current slot is not exempted from the count.
		occ, derr := tx.Reservations().CountActive(ctx, res.RestaurantID(), date)
		if derr != nil {
			return derr
		}
		if derr = occ.Admit(); derr != nil {
			logRejection(ctx, "reschedule", res.RestaurantID(), date, derr)
			return derr
		}

		now := uc.clock.Now()
		previous := res.Date()
		if derr = res.Reschedule(date, now); derr != nil {
			return errs.Mark(derr, errs.ErrDomainValidation)
		}
		if derr = tx.Reservations().Update(ctx, res); derr != nil {
			return derr
		}
		logAdmission(ctx, "reschedule", occ)

		notice := shared.NewReservationNotice(res, now)
		notice.PreviousDate = previous.String()
		return enqueueNotice(ctx, tx, shared.TopicReservationRescheduled, notice)
	})
}

func (uc *reservationCommandsImpl) SoftDelete(ctx context.Context, in ReservationCredentialInput) error {
	cred, err := reservation.NewCredential(in.DNI, in.Code)
	if err != nil {
		return ErrReservationNotFound
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := uc.findByCredential(ctx, tx, in.ID, cred)
		if derr != nil {
			return derr
		}

		now := uc.clock.Now()
		if derr = res.SoftDelete(now); derr != nil {
			return ErrReservationNotFound
		}
		if derr = tx.Reservations().Update(ctx, res); derr != nil {
			return derr
		}
		return enqueueNotice(ctx, tx, shared.TopicReservationCancelled, shared.NewReservationNotice(res, now))
	})
}

func (uc *reservationCommandsImpl) findByCredential(ctx context.Context, tx shared.Tx, id uuid.UUID, cred reservation.Credential) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindActiveByCredential(ctx, id, cred)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func enqueueNotice(ctx context.Context, tx shared.Tx, topic string, notice shared.ReservationNotice) error {
	payload, err := notice.Marshal()
	if err != nil {
		return errs.Wrap(err, "failed to encode reservation notice")
	}
	return tx.Notifications().CreateJob(ctx, shared.NotificationKindEmail, topic, payload, notice.OccurredAt)
}

// logAdmission records the free slots seen under the date lock, before the
// admitted reservation took one of them.
func logAdmission(ctx context.Context, op string, occ reservation.Occupancy) {
	slog.DebugContext(ctx, "reservation admitted",
		"op", op,
		"restaurant_id", occ.RestaurantID.String(),
		"date", occ.Date.String(),
		"restaurant_free", occ.RestaurantRemaining(),
		"global_free", occ.GlobalRemaining())
}

func logRejection(ctx context.Context, op string, restaurantID uuid.UUID, date reservation.Date, err error) {
	var capErr *reservation.CapacityExceededError
	if !errs.As(err, &capErr) {
		return
	}
	slog.InfoContext(ctx, "reservation rejected by capacity",
		"op", op,
		"scope", string(capErr.Scope),
		"restaurant_id", restaurantID.String(),
		"date", date.String())
}
