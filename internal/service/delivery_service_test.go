package service

import (
	"strconv"
	"testing"

	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/model"
)

func TestDecodeOptionLabel(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		id      uint
		want    string
		wantErr bool
	}{
		{name: "single digit id", stored: "Paris7", id: 7, want: "Paris"},
		{name: "multi digit id", stored: "Berlin123", id: 123, want: "Berlin"},
		{name: "label with trailing digits", stored: "Route 6642", id: 42, want: "Route 66"},
		{name: "name shorter than suffix", stored: "9", id: 123, wantErr: true},
		{name: "name exactly the suffix", stored: "42", id: 42, wantErr: true},
		{name: "empty name", stored: "", id: 1, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeOptionLabel(tc.stored, tc.id)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("DecodeOptionLabel(%q, %d): expected error, got %q", tc.stored, tc.id, got)
				}
				if !apperr.IsKind(err, apperr.KindLabelDecode) {
					t.Errorf("expected label decode kind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeOptionLabel(%q, %d): %v", tc.stored, tc.id, err)
			}
			if got != tc.want {
				t.Errorf("DecodeOptionLabel(%q, %d) = %q, want %q", tc.stored, tc.id, got, tc.want)
			}
		})
	}
}

// Encoding appends the decimal id, decoding strips it. Whatever the label,
// the pair must round-trip.
func TestDecodeOptionLabelRoundTrip(t *testing.T) {
	labels := []string{"A", "Tokyo", "answer with spaces", "trailing digits 99", "日本語"}
	ids := []uint{1, 9, 10, 123, 4096}
	for _, label := range labels {
		for _, id := range ids {
			stored := label + strconv.FormatUint(uint64(id), 10)
			got, err := DecodeOptionLabel(stored, id)
			if err != nil {
				t.Fatalf("round trip %q id %d: %v", label, id, err)
			}
			if got != label {
				t.Errorf("round trip %q id %d: got %q", label, id, got)
			}
		}
	}
}

func TestGetShuffledQuestions(t *testing.T) {
	testRepo := newFakeTestRepo(&model.Test{ID: 1, Name: "Geography", TotalQuestions: 10})
	questionRepo := newFakeQuestionRepo()
	for i := uint(1); i <= 10; i++ {
		questionRepo.Create(&model.Question{ID: i, TestID: 1, Name: "Q" + strconv.Itoa(int(i))})
	}
	testRepo.questionSource = questionRepo
	svc := NewDeliveryService(testRepo, questionRepo, newFakeOptionRepo(), newFakeClassroomRepo())

	t.Run("unknown test", func(t *testing.T) {
		_, err := svc.GetShuffledQuestions(99)
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("returns every question exactly once", func(t *testing.T) {
		got, err := svc.GetShuffledQuestions(1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 10 {
			t.Fatalf("got %d questions, want 10", len(got))
		}
		seen := make(map[uint]bool)
		for _, q := range got {
			if seen[q.ID] {
				t.Errorf("question %d delivered twice", q.ID)
			}
			seen[q.ID] = true
			if q.TestID != 1 {
				t.Errorf("question %d has test id %d", q.ID, q.TestID)
			}
		}
	})

	t.Run("order varies across requests", func(t *testing.T) {
		first, err := svc.GetShuffledQuestions(1)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 30; i++ {
			next, err := svc.GetShuffledQuestions(1)
			if err != nil {
				t.Fatal(err)
			}
			for j := range next {
				if next[j].ID != first[j].ID {
					return
				}
			}
		}
		t.Error("30 shuffles of 10 questions all came back in the same order")
	})
}

func TestGetClassroomTests(t *testing.T) {
	testRepo := newFakeTestRepo(
		&model.Test{ID: 1, Name: "Geography", TotalQuestions: 10},
		&model.Test{ID: 2, Name: "History", TotalQuestions: 5},
		&model.Test{ID: 3, Name: "Unassigned"},
	)
	testRepo.classroomTests[1] = []uint{1, 2}
	classroomRepo := newFakeClassroomRepo(&model.Classroom{ID: 1, Name: "3-B", SchoolID: 1, TeacherID: 1})
	svc := NewDeliveryService(testRepo, newFakeQuestionRepo(), newFakeOptionRepo(), classroomRepo)

	t.Run("unknown classroom", func(t *testing.T) {
		_, err := svc.GetClassroomTests(99)
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("lists only assigned tests", func(t *testing.T) {
		got, err := svc.GetClassroomTests(1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d tests, want 2", len(got))
		}
		if got[0].Name != "Geography" || got[0].TotalQuestions != 10 {
			t.Errorf("first test: %+v", got[0])
		}
		for _, test := range got {
			if test.ID == 3 {
				t.Error("unassigned test leaked into the classroom listing")
			}
		}
	})
}

func TestGetOptions(t *testing.T) {
	testRepo := newFakeTestRepo(&model.Test{ID: 1, Name: "Geography"})
	questionRepo := newFakeQuestionRepo(&model.Question{ID: 5, TestID: 1, Name: "Capital of France?"})
	optionRepo := newFakeOptionRepo(
		&model.Option{ID: 11, QuestionID: 5, Name: "Paris11", IsCorrect: true},
		&model.Option{ID: 12, QuestionID: 5, Name: "London12"},
		&model.Option{ID: 13, QuestionID: 5, Name: "Rome13", Picture: []byte{0x1}},
	)
	svc := NewDeliveryService(testRepo, questionRepo, optionRepo, newFakeClassroomRepo())

	t.Run("unknown question", func(t *testing.T) {
		_, err := svc.GetOptions(99)
		if !apperr.IsKind(err, apperr.KindNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("stored order with decoded labels", func(t *testing.T) {
		got, err := svc.GetOptions(5)
		if err != nil {
			t.Fatal(err)
		}
		wantLabels := []string{"Paris", "London", "Rome"}
		if len(got) != len(wantLabels) {
			t.Fatalf("got %d options, want %d", len(got), len(wantLabels))
		}
		for i, opt := range got {
			if opt.Label != wantLabels[i] {
				t.Errorf("option %d: label %q, want %q", i, opt.Label, wantLabels[i])
			}
		}
		if !got[2].HasPicture {
			t.Error("third option should report a picture")
		}
		if got[0].HasPicture {
			t.Error("first option should not report a picture")
		}
	})

	t.Run("undecodable stored name fails loudly", func(t *testing.T) {
		questionRepo.Create(&model.Question{ID: 6, TestID: 1, Name: "Corrupted"})
		optionRepo.Create(&model.Option{ID: 77, QuestionID: 6, Name: "77"})
		_, err := svc.GetOptions(6)
		if !apperr.IsKind(err, apperr.KindLabelDecode) {
			t.Fatalf("expected label decode error, got %v", err)
		}
	})
}
