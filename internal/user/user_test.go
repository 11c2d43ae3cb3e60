package user

import (
	"encoding/json"
	"testing"
)

func TestUnmarshalAgeNumberOrString(t *testing.T) {
	var users []User
	data := `[{"id":"1","name":"A","age":42},{"id":"2","name":"B","age":"17"},{"id":"3","name":"C","age":null},{"id":"4","name":"D"}]`
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	want := []string{"42", "17", "", ""}
	for i, u := range users {
		if u.Age != want[i] {
			t.Fatalf("record %s: expected age %q, got %q", u.ID, want[i], u.Age)
		}
	}
	if users[0].Name != "A" {
		t.Fatalf("other fields should still decode, got %+v", users[0])
	}
}

func TestDraftDiffers(t *testing.T) {
	u := &User{ID: "1", Name: "A", Email: "a@example.com", CreatedAt: "2025-01-01T00:00:00Z"}
	d := DraftFrom(u)
	if d.Differs(u) {
		t.Fatalf("a fresh draft should not differ")
	}
	d.Age = "3"
	if !d.Differs(u) {
		t.Fatalf("expected a difference after changing age")
	}
}

func TestAvatarFallback(t *testing.T) {
	u := User{Name: "zoe"}
	if u.Initial() != "Z" {
		t.Fatalf("expected Z, got %q", u.Initial())
	}
	if (User{}).Initial() != "?" {
		t.Fatalf("expected ? for an empty name")
	}
	if u.AvatarColor() != avatarColors[int('z')%len(avatarColors)] {
		t.Fatalf("unexpected colour %s", u.AvatarColor())
	}
}

func TestDraftUnmarshalNumericAge(t *testing.T) {
	var d Draft
	if err := json.Unmarshal([]byte(`{"name":"Ken","age":44,"gender":"male"}`), &d); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if d.Age != "44" || d.Name != "Ken" || d.Gender != "male" {
		t.Fatalf("unexpected draft %+v", d)
	}
}
