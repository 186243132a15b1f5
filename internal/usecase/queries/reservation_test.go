//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/pkg/clock"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/queries"
	"restaurant-booking/tests/common/builder"
	queriesmock "restaurant-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	store *queriesmock.MockReservationReadStore
	clock *clock.MockClock
	q     queries.ReservationQueries
}

func (s *ReservationQueriesTestSuite) SetupSubTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockReservationReadStore(s.ctrl)
	bogota, err := time.LoadLocation("America/Bogota")
	s.Require().NoError(err)
	// 02:00 UTC on the 16th is still the 15th in Bogotá
	s.clock = clock.NewMockClock(time.Date(2026, 10, 16, 2, 0, 0, 0, time.UTC))
	s.q = queries.NewReservationQueries(s.store, s.clock, bogota)
}

func TestReservationQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func strPtr(s string) *string { return &s }

func (s *ReservationQueriesTestSuite) TestGetByID() {
	s.Run("found", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.store.EXPECT().FindActiveByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := s.q.GetByID(context.Background(), view.ID)

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("not found", func() {
		s.store.EXPECT().FindActiveByID(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound))

		_, err := s.q.GetByID(context.Background(), uuid.New())

		s.ErrorIs(err, queries.ErrReservationNotFound)
	})

	s.Run("db failure is passed through", func() {
		boom := errors.New("connection reset")
		s.store.EXPECT().FindActiveByID(gomock.Any(), gomock.Any()).Return(nil, infra.WrapRepoErr("failed", boom))

		_, err := s.q.GetByID(context.Background(), uuid.New())

		s.ErrorIs(err, boom)
		s.NotErrorIs(err, queries.ErrReservationNotFound)
	})
}

func (s *ReservationQueriesTestSuite) TestList() {
	active := queries.ReservationFilter{Status: reservation.FilterActive}

	s.Run("first page with next cursor", func() {
		rows := make([]*queries.ReservationView, 3)
		for i := range rows {
			rows[i] = builder.NewReservationBuilder().BuildView()
		}
		s.store.EXPECT().List(gomock.Any(), active, (*queries.Keyset)(nil), int32(3)).Return(rows, nil)

		got, next, err := s.q.List(context.Background(), active, nil, 2)

		s.Require().NoError(err)
		s.Len(got, 2)
		s.Require().NotNil(next)
		ks, err := queries.DecodeAfterCursor(next.After)
		s.Require().NoError(err)
		s.Equal(rows[1].ID, ks.ID)
	})

	s.Run("last page has no cursor", func() {
		rows := []*queries.ReservationView{builder.NewReservationBuilder().BuildView()}
		s.store.EXPECT().List(gomock.Any(), active, gomock.Any(), int32(queries.DefaultListLimit+1)).Return(rows, nil)

		got, next, err := s.q.List(context.Background(), active, nil, 0)

		s.Require().NoError(err)
		s.Len(got, 1)
		s.Nil(next)
	})

	s.Run("cursor is decoded into a keyset", func() {
		id := uuid.New()
		at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(at, id)}
		s.store.EXPECT().List(gomock.Any(), active, &queries.Keyset{CreatedAt: at, ID: id}, int32(11)).Return(nil, nil)

		_, _, err := s.q.List(context.Background(), active, cursor, 10)

		s.NoError(err)
	})

	s.Run("bad cursor", func() {
		_, _, err := s.q.List(context.Background(), active, &queries.Cursor{After: "garbage"}, 10)

		s.True(errs.Is(err, errs.ErrDomainValidation))
		s.True(errs.Is(err, queries.ErrInvalidCursor))
	})

	s.Run("status must be chosen", func() {
		_, _, err := s.q.List(context.Background(), queries.ReservationFilter{}, nil, 10)

		s.True(errs.Is(err, errs.ErrDomainValidation))
	})
}

func (s *ReservationQueriesTestSuite) TestSearchByClient() {
	today := reservation.NewDate(2026, 10, 15)

	s.Run("dni only, from today in the booking zone", func() {
		view := builder.NewReservationBuilder().BuildView()
		s.store.EXPECT().SearchActiveFrom(gomock.Any(), today, gomock.Any(), (*reservation.Code)(nil)).
			DoAndReturn(func(_ context.Context, _ reservation.Date, dni *reservation.DNI, _ *reservation.Code) ([]*queries.ReservationView, error) {
				s.Equal("1020304050", dni.String())
				return []*queries.ReservationView{view}, nil
			})

		got, err := s.q.SearchByClient(context.Background(), queries.ClientSearch{DNI: strPtr(" 1020304050 ")})

		s.Require().NoError(err)
		s.Len(got, 1)
	})

	s.Run("code is normalised", func() {
		s.store.EXPECT().SearchActiveFrom(gomock.Any(), today, (*reservation.DNI)(nil), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ reservation.Date, _ *reservation.DNI, code *reservation.Code) ([]*queries.ReservationView, error) {
				s.Equal("ABC234", code.String())
				return nil, nil
			})

		got, err := s.q.SearchByClient(context.Background(), queries.ClientSearch{Code: strPtr("abc234")})

		s.Require().NoError(err)
		s.NotNil(got)
		s.Empty(got)
	})

	s.Run("no criteria", func() {
		_, err := s.q.SearchByClient(context.Background(), queries.ClientSearch{DNI: strPtr("  "), Code: strPtr("")})

		s.True(errs.Is(err, queries.ErrSearchCriteriaRequired))
		s.True(errs.Is(err, errs.ErrDomainValidation))
	})

	s.Run("malformed criteria match nothing", func() {
		got, err := s.q.SearchByClient(context.Background(), queries.ClientSearch{Code: strPtr("!")})

		s.Require().NoError(err)
		s.Empty(got)
	})
}
