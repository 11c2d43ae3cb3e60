package user

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// User mirrors one record held by the remote store. ID and CreatedAt are
// assigned by the store and never sent back by the dashboard.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Location  string `json:"location,omitempty"`
	Age       string `json:"age,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts age as either a JSON string or a JSON number, since
// hosted mock stores are not consistent about it.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		Age json.RawMessage `json:"age"`
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.Age = rawString(aux.Age)
	return nil
}

func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return strings.Trim(string(raw), `"`)
}

// Draft is the editable part of a record, as submitted by the form.
type Draft struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Avatar   string `json:"avatar" form:"avatar"`
	Gender   string `json:"gender" form:"gender"`
	Location string `json:"location" form:"location"`
	Age      string `json:"age" form:"age" validate:"omitempty,numeric"`
}

// UnmarshalJSON accepts age as a JSON number or string, like User.
func (d *Draft) UnmarshalJSON(data []byte) error {
	type alias Draft
	aux := struct {
		*alias
		Age json.RawMessage `json:"age"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Age = rawString(aux.Age)
	return nil
}

// DraftFrom copies the editable fields of u. A nil user gives an empty draft.
func DraftFrom(u *User) Draft {
	if u == nil {
		return Draft{}
	}
	return Draft{
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
		Gender:   u.Gender,
		Location: u.Location,
		Age:      u.Age,
	}
}

// Field names a single editable field of a Draft.
type Field string

const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldAvatar   Field = "avatar"
	FieldGender   Field = "gender"
	FieldLocation Field = "location"
	FieldAge      Field = "age"
)

// Fields lists the editable fields in form order.
var Fields = []Field{FieldName, FieldEmail, FieldAvatar, FieldLocation, FieldAge, FieldGender}

func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldAvatar:
		return d.Avatar
	case FieldGender:
		return d.Gender
	case FieldLocation:
		return d.Location
	case FieldAge:
		return d.Age
	}
	return ""
}

func (d *Draft) set(f Field, value string) bool {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldAvatar:
		d.Avatar = value
	case FieldGender:
		d.Gender = value
	case FieldLocation:
		d.Location = value
	case FieldAge:
		d.Age = value
	default:
		return false
	}
	return true
}

// Differs reports whether any field of d differs from the record it was
// loaded from.
func (d Draft) Differs(original *User) bool {
	base := DraftFrom(original)
	for _, f := range Fields {
		if d.Get(f) != base.Get(f) {
			return true
		}
	}
	return false
}

var avatarColors = []string{
	"#EF4444",
	"#F59E0B",
	"#10B981",
	"#3B82F6",
	"#8B5CF6",
	"#EC4899",
}

// Initial is the uppercased first letter of the name, used when no avatar
// image is set.
func (u User) Initial() string {
	for _, r := range u.Name {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// AvatarColor picks a fallback avatar colour from the first byte of the name.
func (u User) AvatarColor() string {
	if u.Name == "" {
		return avatarColors[0]
	}
	return avatarColors[int(u.Name[0])%len(avatarColors)]
}
