package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	due := "2026-02-10"
	task := Task{
		ID:        "task-1",
		Text:      "buy milk",
		Priority:  PriorityHigh,
		Category:  DefaultCategory,
		DueDate:   &due,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	task := Task{ID: "task-1", Text: "   ", Priority: PriorityLow}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank text")
	}

	task.Text = "ok"
	task.Priority = Priority("urgent")
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}

	task.Priority = PriorityLow
	bad := "10/02/2026"
	task.DueDate = &bad
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for malformed due date")
	}
}

func TestPriorityMappingsAreExhaustive(t *testing.T) {
	cases := []struct {
		p     Priority
		rank  int
		label string
	}{
		{PriorityHigh, 3, "높음"},
		{PriorityMedium, 2, "중간"},
		{PriorityLow, 1, "낮음"},
	}
	for _, tc := range cases {
		if !tc.p.IsValid() {
			t.Fatalf("expected %q to be valid", tc.p)
		}
		if tc.p.Rank() != tc.rank {
			t.Fatalf("rank(%q) = %d, want %d", tc.p, tc.p.Rank(), tc.rank)
		}
		if tc.p.Label() != tc.label {
			t.Fatalf("label(%q) = %q, want %q", tc.p, tc.p.Label(), tc.label)
		}
		if tc.p.Color() == Priority("bogus").Color() {
			t.Fatalf("expected %q to have its own colour", tc.p)
		}
	}
	if Priority("bogus").IsValid() || Priority("bogus").Rank() != 0 {
		t.Fatal("expected unknown priority to be invalid with zero rank")
	}
}

func TestPriorityRaiseLowerSaturate(t *testing.T) {
	if PriorityHigh.Raise() != PriorityHigh || PriorityLow.Lower() != PriorityLow {
		t.Fatal("expected raise/lower to saturate")
	}
	if PriorityLow.Raise() != PriorityMedium || PriorityHigh.Lower() != PriorityMedium {
		t.Fatal("expected single step moves")
	}
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority(" HIGH ")
	if err != nil || p != PriorityHigh {
		t.Fatalf("parse high: got %q, %v", p, err)
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	yesterday := "2026-02-08"
	today := "2026-02-09"
	task := Task{ID: "t", Text: "x", Priority: PriorityMedium, DueDate: &yesterday}
	if !task.Overdue(now) {
		t.Fatal("expected task due yesterday to be overdue")
	}
	task.DueDate = &today
	if task.Overdue(now) {
		t.Fatal("task due today is not overdue")
	}
	task.DueDate = &yesterday
	task.Completed = true
	if task.Overdue(now) {
		t.Fatal("completed task is never overdue")
	}
}

func TestFilterAndSortCycles(t *testing.T) {
	if StatusAll.Next() != StatusActive || StatusActive.Next() != StatusCompleted || StatusCompleted.Next() != StatusAll {
		t.Fatal("unexpected status cycle")
	}
	if SortNewest.Next() != SortOldest || SortOldest.Next() != SortPriority || SortPriority.Next() != SortNewest {
		t.Fatal("unexpected sort cycle")
	}
	if _, err := ParseStatusFilter("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if s, err := ParseSortOption("Priority"); err != nil || s != SortPriority {
		t.Fatalf("parse sort: got %q, %v", s, err)
	}
}

func TestLanguageCodes(t *testing.T) {
	if LanguageEnglish.Code() != "en" || LanguageThai.Code() != "th" {
		t.Fatal("unexpected language codes")
	}
	if LanguageEnglish.Toggle() != LanguageThai || LanguageThai.Toggle() != LanguageEnglish {
		t.Fatal("unexpected language toggle")
	}
	if _, err := ParseLanguage("klingon"); !errors.Is(err, ErrInvalidLanguage) {
		t.Fatalf("expected ErrInvalidLanguage, got %v", err)
	}
	w := WordPair{Primary: "hello", Translation: "안녕", LanguageCode: "en"}
	if err := w.Validate(); err != nil {
		t.Fatalf("expected valid word pair: %v", err)
	}
	w.Translation = ""
	if err := w.Validate(); err == nil {
		t.Fatal("expected error for missing translation")
	}
}
