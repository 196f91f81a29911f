package service

import (
	"testing"

	"github.com/hmiyake/classquiz/config"
	"github.com/hmiyake/classquiz/internal/model"
)

func sub(id, questionID, optionID uint, score int) model.UserTestSubmission {
	return model.UserTestSubmission{ID: id, UserID: 100, TestID: 1, QuestionID: questionID, SelectedOptionID: optionID, Score: score}
}

func TestAdvisoryLockKey(t *testing.T) {
	type pair struct{ userID, testID uint }
	pairs := []pair{
		{1, 2},
		{2, 1},
		{1<<31 + 7, 9}, // ids past int32 range must not fold onto small ids
		{7, 9},
		{7, 1<<31 + 9},
	}
	seen := make(map[int64]pair, len(pairs))
	for _, p := range pairs {
		key := advisoryLockKey(p.userID, p.testID)
		if prev, dup := seen[key]; dup {
			t.Errorf("pairs %+v and %+v collide on lock key %d", prev, p, key)
		}
		seen[key] = p
	}
}

func TestEffectiveSubmissions(t *testing.T) {
	pending := []model.UserTestSubmission{
		sub(1, 5, 11, 0),
		sub(2, 6, 21, 1),
		sub(3, 5, 12, 1), // resubmission of question 5
	}

	t.Run("upsert policy passes rows through", func(t *testing.T) {
		got := effectiveSubmissions(pending, config.ResubmitUpsert)
		if len(got) != 3 {
			t.Fatalf("got %d rows, want 3", len(got))
		}
	})

	t.Run("append policy keeps latest per question in order", func(t *testing.T) {
		got := effectiveSubmissions(pending, config.ResubmitAppend)
		if len(got) != 2 {
			t.Fatalf("got %d rows, want 2", len(got))
		}
		if got[0].ID != 2 || got[1].ID != 3 {
			t.Errorf("unexpected survivors: %d, %d", got[0].ID, got[1].ID)
		}
		if got[1].SelectedOptionID != 12 || got[1].Score != 1 {
			t.Errorf("latest submission for question 5 did not win: %+v", got[1])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := effectiveSubmissions(nil, config.ResubmitAppend); len(got) != 0 {
			t.Errorf("got %d rows from empty input", len(got))
		}
	})
}

func TestBuildRecords(t *testing.T) {
	rc := recordContext{UserID: 100, TestID: 1, GroupID: "g-1", SessionID: 9}
	questionNames := map[uint]string{5: "Capital of France?", 6: "Largest ocean?"}
	optionNames := map[uint]string{11: "Paris11", 21: "Pacific21"}

	t.Run("per question records plus total", func(t *testing.T) {
		subs := []model.UserTestSubmission{sub(1, 5, 11, 1), sub(2, 6, 21, 0)}
		records, total := buildRecords(subs, questionNames, optionNames, rc)

		if total != 1 {
			t.Errorf("total = %d, want 1", total)
		}
		if len(records) != 3 {
			t.Fatalf("got %d records, want 2 per-question + 1 total", len(records))
		}

		first := records[0]
		if first.QuestionID == nil || *first.QuestionID != 5 {
			t.Errorf("first record question id: %+v", first.QuestionID)
		}
		if first.QuestionName != "Capital of France?" || first.SelectedOptionName != "Paris11" {
			t.Errorf("names not snapshotted: %+v", first)
		}
		if first.RecordedScore == nil || *first.RecordedScore != 1 {
			t.Errorf("first record score: %+v", first.RecordedScore)
		}
		if first.TotalRecordedScore != nil {
			t.Error("per-question record must not carry a total")
		}

		last := records[2]
		if last.QuestionID != nil || last.RecordedScore != nil {
			t.Errorf("total record must not reference a question: %+v", last)
		}
		if last.TotalRecordedScore == nil || *last.TotalRecordedScore != 1 {
			t.Errorf("total record score: %+v", last.TotalRecordedScore)
		}

		for i, rec := range records {
			if rec.GroupID != "g-1" || rec.SessionID != 9 || rec.UserID != 100 || rec.TestID != 1 {
				t.Errorf("record %d missing shared context: %+v", i, rec)
			}
		}
	})

	t.Run("no submissions still writes the total record", func(t *testing.T) {
		records, total := buildRecords(nil, questionNames, optionNames, rc)
		if total != 0 {
			t.Errorf("total = %d", total)
		}
		if len(records) != 1 {
			t.Fatalf("got %d records, want only the total", len(records))
		}
		if records[0].TotalRecordedScore == nil || *records[0].TotalRecordedScore != 0 {
			t.Errorf("total record: %+v", records[0])
		}
	})

	t.Run("scores use distinct pointers", func(t *testing.T) {
		subs := []model.UserTestSubmission{sub(1, 5, 11, 1), sub(2, 6, 21, 1)}
		records, _ := buildRecords(subs, questionNames, optionNames, rc)
		if records[0].RecordedScore == records[1].RecordedScore {
			t.Error("records share a score pointer")
		}
	})
}
