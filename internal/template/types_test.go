package template

import "testing"

func TestFieldValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   Field
		wantErr bool
	}{
		{"valid text", Field{Name: "clientName", Kind: KindText}, false},
		{"valid date", Field{Name: "startDate", Kind: KindDate, Required: true}, false},
		{"valid select", Field{Name: "state", Kind: KindSelect, Options: []string{"CA", "NY"}}, false},
		{"missing name", Field{Kind: KindText}, true},
		{"missing kind", Field{Name: "x"}, true},
		{"unknown kind", Field{Name: "x", Kind: "checkbox"}, true},
		{"select without options", Field{Name: "state", Kind: KindSelect}, true},
		{"options on text field", Field{Name: "x", Kind: KindText, Options: []string{"a"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.field.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTemplateValidate(t *testing.T) {
	valid := Template{
		Title:   "NDA",
		Content: "Between {{partyOne}} and {{partyTwo}}",
		Fields: []Field{
			{Name: "partyOne", Kind: KindText},
			{Name: "partyTwo", Kind: KindText},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}

	dup := valid
	dup.Fields = []Field{{Name: "a", Kind: KindText}, {Name: "a", Kind: KindText}}
	if err := dup.Validate(); err == nil {
		t.Error("duplicate field names should be rejected")
	}

	empty := valid
	empty.Content = ""
	if err := empty.Validate(); err == nil {
		t.Error("empty content should be rejected")
	}
}

func TestSplitWords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rentAmount", "rent amount"},
		{"companyName", "company name"},
		{"party_one", "party one"},
		{"due-day", "due day"},
		{"simple", "simple"},
	}
	for _, tc := range cases {
		if got := spaced(tc.in); got != tc.want {
			t.Errorf("spaced(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
