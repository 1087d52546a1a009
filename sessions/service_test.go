package sessions_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/BenjaminBruton/skillwrap/config"
	"github.com/BenjaminBruton/skillwrap/internal/database"
	"github.com/BenjaminBruton/skillwrap/sessions"
	"github.com/google/uuid"
)

type MockDBQueries struct {
	*config.BaseMock
	tTesting                *testing.T
	GetSessionsWithCampFunc func(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error)
}

func (mockDBQueries *MockDBQueries) GetSessionsWithCamp(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error) {
	if mockDBQueries.GetSessionsWithCampFunc == nil {
		mockDBQueries.tTesting.Fatalf("GetSessionsWithCamp was called, but no expectation (GetSessionsWithCampFunc) was set.")
	}

	return mockDBQueries.GetSessionsWithCampFunc(ctx, campSlug)
}

// assertNoError asserts that the error is nil.
func assertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: expected no error, got: %v", msg, err)
	}
}

func sessionRow(currentBookings int32, maxCapacity int32, status string) database.GetSessionsWithCampRow {
	return database.GetSessionsWithCampRow{
		Session: database.Session{
			ID:              uuid.New(),
			CampID:          uuid.New(),
			WeekNumber:      1,
			TimeSlot:        "morning",
			CurrentBookings: currentBookings,
			MaxCapacity:     maxCapacity,
			Status:          status,
		},
		Camp: database.Camp{
			ID:    uuid.New(),
			Name:  "Robotics Camp",
			Slug:  "robotics",
			Price: "249.00",
		},
	}
}

func TestListSessions(tTesting *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name                   string
		row                    database.GetSessionsWithCampRow
		expectedAvailableSpots int32
		expectedIsAvailable    bool
		expectedIsFull         bool
	}{
		{
			name:                   "OpenWithSpots",
			row:                    sessionRow(3, 12, "open"),
			expectedAvailableSpots: 9,
			expectedIsAvailable:    true,
			expectedIsFull:         false,
		},
		{
			name:                   "AtCapacity",
			row:                    sessionRow(12, 12, "open"),
			expectedAvailableSpots: 0,
			expectedIsAvailable:    false,
			expectedIsFull:         true,
		},
		{
			name:                   "MarkedFullWithSpots",
			row:                    sessionRow(5, 12, "full"),
			expectedAvailableSpots: 7,
			expectedIsAvailable:    false,
			expectedIsFull:         true,
		},
		{
			name:                   "ClosedWithSpots",
			row:                    sessionRow(5, 12, "closed"),
			expectedAvailableSpots: 7,
			expectedIsAvailable:    false,
			expectedIsFull:         false,
		},
		{
			// The counter can overshoot capacity under concurrent webhooks;
			// the derived spot count never goes negative.
			name:                   "OverCapacity",
			row:                    sessionRow(14, 12, "full"),
			expectedAvailableSpots: 0,
			expectedIsAvailable:    false,
			expectedIsFull:         true,
		},
	}

	for _, testCase := range tests {
		tTesting.Run(testCase.name, func(t *testing.T) {
			mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: t}
			mockDB.GetSessionsWithCampFunc = func(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error) {
				return []database.GetSessionsWithCampRow{testCase.row}, nil
			}

			service := sessions.NewService(mockDB)

			result, listError := service.ListSessions(ctx, "")

			assertNoError(t, listError, "ListSessions")

			if len(result) != 1 {
				t.Fatalf("expected 1 session, got %d", len(result))
			}

			session := result[0]

			if session.AvailableSpots != testCase.expectedAvailableSpots {
				t.Errorf("expected %d available spots, got %d", testCase.expectedAvailableSpots, session.AvailableSpots)
			}

			if session.IsAvailable != testCase.expectedIsAvailable {
				t.Errorf("expected is_available %t, got %t", testCase.expectedIsAvailable, session.IsAvailable)
			}

			if session.IsFull != testCase.expectedIsFull {
				t.Errorf("expected is_full %t, got %t", testCase.expectedIsFull, session.IsFull)
			}

			if session.Camp.Price != 249.00 {
				t.Errorf("expected camp price 249.00, got %f", session.Camp.Price)
			}
		})
	}
}

func TestListSessionsFiltersBySlug(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}

	var receivedSlug sql.NullString

	mockDB.GetSessionsWithCampFunc = func(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error) {
		receivedSlug = campSlug

		return []database.GetSessionsWithCampRow{}, nil
	}

	service := sessions.NewService(mockDB)

	_, listError := service.ListSessions(context.Background(), "robotics")

	assertNoError(tTesting, listError, "ListSessions")

	if !receivedSlug.Valid || receivedSlug.String != "robotics" {
		tTesting.Errorf("expected slug filter \"robotics\", got %+v", receivedSlug)
	}
}

func TestListSessionsDatabaseError(tTesting *testing.T) {
	mockDB := &MockDBQueries{BaseMock: config.NewBaseMock(), tTesting: tTesting}
	mockDB.GetSessionsWithCampFunc = func(ctx context.Context, campSlug sql.NullString) ([]database.GetSessionsWithCampRow, error) {
		return nil, errors.New("connection refused")
	}

	service := sessions.NewService(mockDB)

	_, listError := service.ListSessions(context.Background(), "")

	if !errors.Is(listError, sessions.ErrInternalError) {
		tTesting.Fatalf("expected ErrInternalError, got: %v", listError)
	}
}
