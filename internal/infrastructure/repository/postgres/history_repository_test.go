package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*HistoryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &HistoryRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestDomainHistoryScansRow(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"average_accuracy", "similar_query_count", "feedback_score"}).
		AddRow(0.82, 140, 0.6)
	mock.ExpectQuery("SELECT average_accuracy, similar_query_count, feedback_score").
		WithArgs("İş Hukuku").
		WillReturnRows(rows)

	history, err := repo.DomainHistory(context.Background(), "İş Hukuku")
	if err != nil {
		t.Fatalf("DomainHistory() error = %v", err)
	}
	if history == nil {
		t.Fatalf("expected history")
	}
	if history.AverageAccuracy != 0.82 || history.SimilarQueryCount != 140 || history.FeedbackScore != 0.6 {
		t.Fatalf("unexpected history %+v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDomainHistoryUnknownDomainIsNotAnError(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT average_accuracy, similar_query_count, feedback_score").
		WithArgs("Uzay Hukuku").
		WillReturnRows(sqlmock.NewRows([]string{"average_accuracy", "similar_query_count", "feedback_score"}))

	history, err := repo.DomainHistory(context.Background(), "Uzay Hukuku")
	if err != nil {
		t.Fatalf("DomainHistory() error = %v", err)
	}
	if history != nil {
		t.Fatalf("expected nil history for unknown domain, got %+v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentHistoryScansRow(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	rows := sqlmock.NewRows([]string{"feedback_score", "click_through_rate", "success_rate"}).
		AddRow(0.7, 0.4, 0.9)
	mock.ExpectQuery("SELECT feedback_score, click_through_rate, success_rate").
		WithArgs("mevzuat-1475").
		WillReturnRows(rows)

	history, err := repo.DocumentHistory(context.Background(), "mevzuat-1475")
	if err != nil {
		t.Fatalf("DocumentHistory() error = %v", err)
	}
	if history == nil || history.ClickThroughRate != 0.4 {
		t.Fatalf("unexpected history %+v", history)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDocumentHistoryQueryFailureSurfaces(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT feedback_score, click_through_rate, success_rate").
		WithArgs("mevzuat-1475").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.DocumentHistory(context.Background(), "mevzuat-1475")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
