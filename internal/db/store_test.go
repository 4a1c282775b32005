// internal/db/store_test.go
package db

import (
	"testing"
	"time"

	"podium/internal/debate"
)

func sampleRecord(id, topic string) *debate.Record {
	return &debate.Record{
		ID:           id,
		Topic:        topic,
		Participants: []string{"biden", "trump"},
		TurnHistory: []debate.Turn{
			{Number: 0, Speaker: "biden", Statement: "Opening statement.", Subtopic: topic, Timestamp: time.Now()},
			{Number: 1, Speaker: "trump", Statement: "Rebuttal.", Subtopic: topic, Timestamp: time.Now()},
		},
		FactChecks: []debate.FactCheck{
			{Turn: 0, Speaker: "biden", Claims: []debate.Claim{{Statement: "A claim.", Accuracy: 0.9, Rating: "MOSTLY TRUE"}}},
		},
		SubtopicsCovered: []string{topic},
		CreatedAt:        time.Now(),
	}
}

func TestStore(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	rec := sampleRecord("test-1", "Climate Change")
	if err := store.SaveRecord(rec, "head_to_head"); err != nil {
		t.Fatalf("SaveRecord() failed: %v", err)
	}

	got, err := store.GetRecord("test-1")
	if err != nil {
		t.Fatalf("GetRecord() failed: %v", err)
	}
	if got.Topic != "Climate Change" {
		t.Errorf("Expected topic 'Climate Change', got %s", got.Topic)
	}
	if len(got.TurnHistory) != 2 {
		t.Errorf("Expected 2 turns, got %d", len(got.TurnHistory))
	}
	if len(got.FactChecks) != 1 || got.FactChecks[0].Claims[0].Rating != "MOSTLY TRUE" {
		t.Errorf("fact checks did not round-trip: %+v", got.FactChecks)
	}

	if err := store.SaveRecord(sampleRecord("test-2", "Economy"), "panel"); err != nil {
		t.Fatalf("SaveRecord() second record failed: %v", err)
	}

	list, err := store.ListDebates(10)
	if err != nil {
		t.Fatalf("ListDebates() failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 debates, got %d", len(list))
	}
	for _, d := range list {
		if d.Turns != 2 || d.FactChecks != 1 {
			t.Errorf("summary counts off: %+v", d)
		}
		if d.Participants != "biden,trump" {
			t.Errorf("Expected participants 'biden,trump', got %s", d.Participants)
		}
	}

	if err := store.DeleteRecord("test-1"); err != nil {
		t.Fatalf("DeleteRecord() failed: %v", err)
	}
	if _, err := store.GetRecord("test-1"); err == nil {
		t.Error("GetRecord() found a deleted debate")
	}

	list, err = store.ListDebates(10)
	if err != nil {
		t.Fatalf("ListDebates() after delete failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != "test-2" {
		t.Errorf("Expected only test-2 to remain, got %+v", list)
	}
}

func TestListLimit(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		rec := sampleRecord("rec-"+string(rune('a'+i)), "Economy")
		if err := store.SaveRecord(rec, "town_hall"); err != nil {
			t.Fatalf("SaveRecord() failed: %v", err)
		}
	}

	list, err := store.ListDebates(3)
	if err != nil {
		t.Fatalf("ListDebates() failed: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("Expected limit of 3, got %d", len(list))
	}
}
