package models

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		number, size int
		want         Page
	}{
		{"defaults", 0, 0, Page{Number: 1, Size: DefaultPageSize}},
		{"negative", -3, -1, Page{Number: 1, Size: DefaultPageSize}},
		{"capped", 2, 500, Page{Number: 2, Size: MaxPageSize}},
		{"kept", 3, 25, Page{Number: 3, Size: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPage(tt.number, tt.size); got != tt.want {
				t.Errorf("NewPage(%d, %d) = %+v, want %+v", tt.number, tt.size, got, tt.want)
			}
		})
	}
}

func TestPageWindow(t *testing.T) {
	tests := []struct {
		page       Page
		n          int
		start, end int
	}{
		{Page{1, 10}, 25, 0, 10},
		{Page{3, 10}, 25, 20, 25},
		{Page{4, 10}, 25, 25, 25},
		{Page{1, 10}, 0, 0, 0},
	}

	for _, tt := range tests {
		start, end := tt.page.Window(tt.n)
		if start != tt.start || end != tt.end {
			t.Errorf("%+v.Window(%d) = (%d, %d), want (%d, %d)", tt.page, tt.n, start, end, tt.start, tt.end)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("password", "Password fields didn't match.")
	if err.Error() != "password: Password fields didn't match." {
		t.Errorf("Error() = %q", err.Error())
	}
	if (&ValidationError{Message: "bad"}).Error() != "bad" {
		t.Error("field-less message should be returned as is")
	}
}

func TestNotificationTypeName(t *testing.T) {
	if NotificationTypeName(VerbLikedPost) != "like" {
		t.Error("like verb")
	}
	if NotificationTypeName(VerbCommentedPost) != "comment" {
		t.Error("comment verb")
	}
	if NotificationTypeName("poked you") != "unknown" {
		t.Error("unknown verb")
	}
}
