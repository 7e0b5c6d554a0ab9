package source

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// normalize runs Normalize over literal lines and fails the test on reader errors.
func normalize(t *testing.T, lines ...string) NormalizeResult {
	t.Helper()
	res, err := Normalize(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		t.Fatalf("unexpected reader error: %v", err)
	}
	return res
}

func TestNormalizeHeaderSkipAndAdmission(t *testing.T) {
	res := normalize(t,
		"Date,Type,Amount,Institution",
		"2024-01-15,Contribution,5000,RBC",
		"2024-06-20,Withdrawal,2000,Tangerine",
	)

	if !res.HeaderSkipped {
		t.Error("HeaderSkipped = false, want true")
	}
	if len(res.Admitted) != 2 {
		t.Fatalf("admitted %d, want 2", len(res.Admitted))
	}
	if len(res.Rejections) != 0 {
		t.Fatalf("rejections %d, want 0: %v", len(res.Rejections), res.Rejections)
	}

	first := res.Admitted[0]
	if first.Kind != model.Contribution {
		t.Errorf("Kind = %s, want %s", first.Kind, model.Contribution)
	}
	if first.Amount != 5000 {
		t.Errorf("Amount = %.2f, want 5000", first.Amount)
	}
	if first.Institution != "RBC" {
		t.Errorf("Institution = %q, want RBC", first.Institution)
	}
	if first.ID == "" || first.ID == res.Admitted[1].ID {
		t.Error("admission IDs must be unique and non-empty")
	}

	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", first.Date, want)
	}
	if res.Admitted[1].Kind != model.Withdrawal {
		t.Errorf("second Kind = %s, want %s", res.Admitted[1].Kind, model.Withdrawal)
	}
}

func TestNormalizeFirstDataLineIsNotHeader(t *testing.T) {
	res := normalize(t, "2024-01-15,Contribution,5000,RBC")
	if res.HeaderSkipped {
		t.Error("data line misread as header")
	}
	if len(res.Admitted) != 1 {
		t.Fatalf("admitted %d, want 1", len(res.Admitted))
	}
}

func TestNormalizePartialBatch(t *testing.T) {
	// One malformed amount among valid lines: batch continues, rejection
	// carries the 1-based line number.
	res := normalize(t,
		"Date,Type,Amount,Institution",
		"2024-01-15,Contribution,5000,RBC",
		"2024-02-20,Contribution,oops,RBC",
		"2024-06-20,Withdrawal,2000,Tangerine",
	)

	if len(res.Admitted) != 2 {
		t.Fatalf("admitted %d, want 2", len(res.Admitted))
	}
	if len(res.Rejections) != 1 {
		t.Fatalf("rejections %d, want 1", len(res.Rejections))
	}
	rej := res.Rejections[0]
	if rej.Line != 3 {
		t.Errorf("rejection line = %d, want 3", rej.Line)
	}
	if !strings.Contains(rej.Reason, "amount") {
		t.Errorf("rejection reason %q should mention the amount", rej.Reason)
	}
	if err := res.Outcome(); err != nil {
		t.Errorf("partial success is not an error, got %v", err)
	}
}

func TestNormalizeNoAdmissions(t *testing.T) {
	res := normalize(t,
		"Date,Type,Amount",
		"nonsense line",
		"2024-01-15,Contribution,-5",
	)
	if len(res.Admitted) != 0 {
		t.Fatalf("admitted %d, want 0", len(res.Admitted))
	}
	if err := res.Outcome(); !errors.Is(err, ErrNoAdmissions) {
		t.Errorf("Outcome() = %v, want ErrNoAdmissions", err)
	}
}

func TestNormalizeQuotedFields(t *testing.T) {
	res := normalize(t,
		`2024-01-15,Contribution,"5,000.50","Royal Bank, Main Branch"`,
	)
	if len(res.Admitted) != 1 {
		t.Fatalf("admitted %d, want 1: %v", len(res.Admitted), res.Rejections)
	}
	tx := res.Admitted[0]
	if tx.Amount != 5000.50 {
		t.Errorf("Amount = %.2f, want 5000.50", tx.Amount)
	}
	if tx.Institution != "Royal Bank, Main Branch" {
		t.Errorf("Institution = %q, want quoted comma preserved", tx.Institution)
	}
}

func TestNormalizeMissingInstitutionDefaults(t *testing.T) {
	res := normalize(t, "2024-01-15,Contribution,100")
	if len(res.Admitted) != 1 {
		t.Fatalf("admitted %d, want 1", len(res.Admitted))
	}
	if got := res.Admitted[0].Institution; got != model.DefaultInstitution {
		t.Errorf("Institution = %q, want %q", got, model.DefaultInstitution)
	}
}

func TestSplitCSVLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims whitespace", " a , b ,c ", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"strips one quote pair", `"a","""b"""`, []string{"a", `""b""`}},
		{"empty fields", ",,", []string{"", "", ""}},
		{"single field", "alone", []string{"alone"}},
		{"unterminated quote keeps quote", `a,"b,c`, []string{"a", `"b,c`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitCSVLine(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitCSVLine(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  model.Kind
	}{
		{"Withdrawal", model.Withdrawal},
		{"WITHDRAW", model.Withdrawal},
		{"cash withdrawal", model.Withdrawal},
		{"Contribution", model.Contribution},
		{"Deposit", model.Contribution},
		{"", model.Contribution},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.input); got != tt.want {
			t.Errorf("ParseKind(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"5000", 5000, false},
		{"5,000.50", 5000.50, false},
		{"1,234,567", 1234567, false},
		{" 42 ", 42, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) = %.2f, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAmount(%q) = %.2f, want %.2f", tt.input, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	valid := []string{"2025-01-02", "2025-1-2", "2 Jan 2025", "Jan 2, 2025", "2025/01/02"}
	for _, in := range valid {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "yesterday", "2025-13-01", "01-2025"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}

func TestAdmitManual(t *testing.T) {
	tests := []struct {
		name    string
		entry   ManualEntry
		year    int
		wantErr string
	}{
		{
			name:  "valid",
			entry: ManualEntry{Date: "2024-03-10", Kind: "Contribution", Amount: "1500", Institution: "RBC"},
			year:  2024,
		},
		{
			name:    "missing institution",
			entry:   ManualEntry{Date: "2024-03-10", Amount: "1500"},
			year:    2024,
			wantErr: "institution",
		},
		{
			name:    "missing date",
			entry:   ManualEntry{Amount: "1500", Institution: "RBC"},
			year:    2024,
			wantErr: "date",
		},
		{
			name:    "missing amount",
			entry:   ManualEntry{Date: "2024-03-10", Institution: "RBC"},
			year:    2024,
			wantErr: "amount",
		},
		{
			name:    "non-positive amount",
			entry:   ManualEntry{Date: "2024-03-10", Amount: "0", Institution: "RBC"},
			year:    2024,
			wantErr: "amount",
		},
		{
			name:    "year mismatch",
			entry:   ManualEntry{Date: "2023-03-10", Amount: "1500", Institution: "RBC"},
			year:    2024,
			wantErr: "outside simulation year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := AdmitManual(tt.entry, tt.year)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("AdmitManual admitted %+v, want error containing %q", tx, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tx.ID == "" {
				t.Error("admitted entry has no ID")
			}
			if tx.Date.Year() != tt.year {
				t.Errorf("Date year = %d, want %d", tx.Date.Year(), tt.year)
			}
		})
	}
}

// FuzzSplitCSVLine checks that the splitter never panics on arbitrary input,
// which matters since it processes untrusted files.
func FuzzSplitCSVLine(f *testing.F) {
	f.Add("2024-01-15,Contribution,5000,RBC")
	f.Add(`2024-01-15,Deposit,"5,000.50","Royal Bank, Main"`)
	f.Add("Date,Type,Amount")
	f.Add(`"unterminated, quote`)
	f.Add("")
	f.Add(",,,,")
	f.Add(`"",""`)
	f.Add("\t a ,\"b")

	f.Fuzz(func(t *testing.T, line string) {
		fields := SplitCSVLine(line)
		if len(fields) == 0 {
			t.Fatalf("SplitCSVLine(%q) returned no fields", line)
		}
		for i, field := range fields {
			if strings.TrimSpace(field) != field {
				t.Errorf("field %d of %q not trimmed: %q", i, line, field)
			}
		}
	})
}
