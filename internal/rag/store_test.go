package rag

import "testing"

func TestStore_AddReplacesDocument(t *testing.T) {
	store := NewStore()
	store.Add(Document{ID: "snap"}, []string{"SNAP one", "SNAP two"})
	store.Add(Document{ID: "rent"}, []string{"Rent help"})
	store.MarkIndexed("snap")
	store.MarkIndexed("rent")

	added := store.Add(Document{ID: "snap"}, []string{"SNAP updated"})

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want %d", store.Len(), 2)
	}
	if store.Documents() != 2 {
		t.Errorf("Documents() = %d, want %d", store.Documents(), 2)
	}
	if len(added) != 1 || added[0].ID != "snap#0" || added[0].Seq != 3 {
		t.Errorf("Add() = %+v, want snap#0 with a fresh sequence number", added)
	}

	passages := store.Passages()
	if passages[0].ID != "rent#0" || passages[1].Text != "SNAP updated" {
		t.Errorf("Passages() = %+v, want rent#0 then the updated SNAP passage", passages)
	}

	// The replaced document waits for new vectors
	if _, ok := store.Passage("snap#0"); ok {
		t.Error("Passage(snap#0) found before the document was indexed again")
	}
	if _, ok := store.Passage("snap#1"); ok {
		t.Error("Passage(snap#1) found after the document was replaced")
	}
	if p, ok := store.Passage("rent#0"); !ok || p.Text != "Rent help" {
		t.Errorf("Passage(rent#0) = %+v, %v, want the rent passage", p, ok)
	}

	unindexed := store.Unindexed()
	if len(unindexed) != 1 || unindexed[0].ID != "snap#0" {
		t.Errorf("Unindexed() = %+v, want snap#0", unindexed)
	}

	store.MarkIndexed("snap")
	if len(store.Unindexed()) != 0 {
		t.Errorf("Unindexed() = %+v, want none", store.Unindexed())
	}
	if p, ok := store.Passage("snap#0"); !ok || p.Text != "SNAP updated" {
		t.Errorf("Passage(snap#0) = %+v, %v, want the updated passage", p, ok)
	}
}

func TestStore_MarkIndexedUnknown(t *testing.T) {
	store := NewStore()
	store.MarkIndexed("missing")
	if store.Documents() != 0 {
		t.Errorf("Documents() = %d, want 0", store.Documents())
	}
}
