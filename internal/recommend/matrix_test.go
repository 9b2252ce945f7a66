// Ratecast - Collaborative Filtering Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ratecast

package recommend

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBuildMatrix_Sample(t *testing.T) {
	t.Parallel()

	m := sampleMatrix(t)

	wantUsers := []string{"u1", "u2", "u3"}
	wantItems := []string{"i1", "i2", "i3"}
	for i, u := range wantUsers {
		if m.Users[i] != u {
			t.Errorf("Users[%d] = %q, want %q", i, m.Users[i], u)
		}
	}
	for j, it := range wantItems {
		if m.Items[j] != it {
			t.Errorf("Items[%d] = %q, want %q", j, m.Items[j], it)
		}
	}

	want := mat.NewDense(3, 3, []float64{
		5, 3, 0,
		4, 0, 5,
		0, 2, 0,
	})
	if !mat.Equal(m.Ratings, want) {
		t.Errorf("Ratings = %v, want %v", mat.Formatted(m.Ratings), mat.Formatted(want))
	}

	users, items := m.Dims()
	if users != 3 || items != 3 {
		t.Errorf("Dims() = (%d, %d), want (3, 3)", users, items)
	}
}

func TestBuildMatrix_AveragesDuplicates(t *testing.T) {
	t.Parallel()

	records := []Interaction{
		{UserID: "alice", ItemID: "book", Rating: 4},
		{UserID: "alice", ItemID: "book", Rating: 2},
		{UserID: "alice", ItemID: "book", Rating: 3},
		{UserID: "bob", ItemID: "film", Rating: 1},
	}

	m, err := BuildMatrix(records)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	tests := []struct {
		user, item string
		want       float64
	}{
		{"alice", "book", 3},
		{"alice", "film", 0},
		{"bob", "book", 0},
		{"bob", "film", 1},
		{"carol", "book", 0},
		{"alice", "album", 0},
	}

	for _, tt := range tests {
		if got := m.At(tt.user, tt.item); !approxEqual(got, tt.want) {
			t.Errorf("At(%q, %q) = %v, want %v", tt.user, tt.item, got, tt.want)
		}
	}
}

func TestBuildMatrix_OrderIndependent(t *testing.T) {
	t.Parallel()

	records := sampleInteractions()
	records = append(records, Interaction{UserID: "u1", ItemID: "i1", Rating: 1})

	reversed := make([]Interaction, len(records))
	for i := range records {
		reversed[len(records)-1-i] = records[i]
	}

	a, err := BuildMatrix(records)
	if err != nil {
		t.Fatalf("BuildMatrix(records) error = %v", err)
	}
	b, err := BuildMatrix(reversed)
	if err != nil {
		t.Fatalf("BuildMatrix(reversed) error = %v", err)
	}

	if !mat.Equal(a.Ratings, b.Ratings) {
		t.Errorf("matrices differ:\n%v\n%v", mat.Formatted(a.Ratings), mat.Formatted(b.Ratings))
	}
	if got := a.At("u1", "i1"); !approxEqual(got, 3) {
		t.Errorf("At(u1, i1) = %v, want 3", got)
	}
}

func TestBuildMatrix_SortsIdentifiers(t *testing.T) {
	t.Parallel()

	records := []Interaction{
		{UserID: "zed", ItemID: "b", Rating: 1},
		{UserID: "Amy", ItemID: "a", Rating: 1},
		{UserID: "amy", ItemID: "B", Rating: 1},
	}

	m, err := BuildMatrix(records)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	wantUsers := []string{"Amy", "amy", "zed"}
	wantItems := []string{"B", "a", "b"}
	for i := range wantUsers {
		if m.Users[i] != wantUsers[i] {
			t.Errorf("Users[%d] = %q, want %q", i, m.Users[i], wantUsers[i])
		}
		if idx, ok := m.UserIndex(wantUsers[i]); !ok || idx != i {
			t.Errorf("UserIndex(%q) = (%d, %v), want (%d, true)", wantUsers[i], idx, ok, i)
		}
	}
	for j := range wantItems {
		if m.Items[j] != wantItems[j] {
			t.Errorf("Items[%d] = %q, want %q", j, m.Items[j], wantItems[j])
		}
		if idx, ok := m.ItemIndex(wantItems[j]); !ok || idx != j {
			t.Errorf("ItemIndex(%q) = (%d, %v), want (%d, true)", wantItems[j], idx, ok, j)
		}
	}
}

func TestBuildMatrix_Empty(t *testing.T) {
	t.Parallel()

	m, err := BuildMatrix(nil)
	if err != nil {
		t.Fatalf("BuildMatrix(nil) error = %v", err)
	}
	if m.Ratings != nil {
		t.Errorf("Ratings = %v, want nil", m.Ratings)
	}
	if users, items := m.Dims(); users != 0 || items != 0 {
		t.Errorf("Dims() = (%d, %d), want (0, 0)", users, items)
	}
	if got := m.At("u1", "i1"); got != 0 {
		t.Errorf("At() on empty matrix = %v, want 0", got)
	}
}

func TestBuildMatrix_MalformedRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []Interaction
	}{
		{
			name:    "empty user",
			records: []Interaction{{UserID: "", ItemID: "i1", Rating: 1}},
		},
		{
			name:    "empty item",
			records: []Interaction{{UserID: "u1", ItemID: "", Rating: 1}},
		},
		{
			name: "bad record after good ones",
			records: []Interaction{
				{UserID: "u1", ItemID: "i1", Rating: 1},
				{UserID: "u2", ItemID: "", Rating: 1},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildMatrix(tt.records)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("BuildMatrix() error = %v, want ErrMalformedRecord", err)
			}
		})
	}
}
