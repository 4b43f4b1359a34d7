package scanner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/0xilhan/Cult-scaner-v1/internal/config"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm"
	"github.com/0xilhan/Cult-scaner-v1/internal/llm/mocks"
	"github.com/0xilhan/Cult-scaner-v1/internal/models"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

const exampleReport = `{"protocol":"ExampleCoin","summary":"ok","profiles":[{"name":"A","role":"Founder","cultScore":9,"diagnosis":"d","background":"b","conspiracies":"c","verdict":"CULT_LEADER","imageUrl":"","socials":{}}]}`

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func newTestScanner(t *testing.T, researcher llm.Researcher, illustrator llm.Illustrator) *Scanner {
	t.Helper()
	s, err := NewScanner(researcher, illustrator, config.DefaultScannerConfig(), testLogger())
	if err != nil {
		t.Fatalf("NewScanner failed: %v", err)
	}
	return s
}

func profilesReport(imageURLs ...string) string {
	var profiles []string
	for i, url := range imageURLs {
		profiles = append(profiles, fmt.Sprintf(
			`{"name":"P%d","role":"Role%d","cultScore":5,"diagnosis":"diag","background":"b","conspiracies":"c","verdict":"CAUTION","imageUrl":%q}`,
			i, i, url))
	}
	return fmt.Sprintf(`{"protocol":"X","summary":"s","profiles":[%s]}`, strings.Join(profiles, ","))
}

func TestScanner_Scan_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	stub := &llm.Image{MIMEType: "image/png", Data: []byte{0, 0, 0}}

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().
		Research(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req llm.ResearchRequest) (*llm.ResearchResponse, error) {
			if !strings.Contains(req.Prompt, `"ExampleCoin"`) {
				t.Errorf("Expected prompt to name the protocol, got %q", req.Prompt)
			}
			if !req.WebSearch {
				t.Error("Expected web search to be requested")
			}
			if !req.JSONOutput {
				t.Error("Expected structured output to be requested")
			}
			if req.SystemPrompt == "" {
				t.Error("Expected persona system prompt")
			}
			return &llm.ResearchResponse{Content: exampleReport}, nil
		})
	illustrator.EXPECT().Illustrate(gomock.Any(), gomock.Any()).Return(stub, nil)

	s := newTestScanner(t, researcher, illustrator)

	result, err := s.Scan(context.Background(), "ExampleCoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Protocol != "ExampleCoin" {
		t.Errorf("Expected protocol 'ExampleCoin', got '%s'", result.Protocol)
	}
	if len(result.Profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(result.Profiles))
	}

	profile := result.Profiles[0]
	if profile.Name != "A" {
		t.Errorf("Expected profile 'A', got '%s'", profile.Name)
	}
	if profile.Verdict != models.VerdictCultLeader {
		t.Errorf("Expected verdict CULT_LEADER, got %s", profile.Verdict)
	}
	if profile.ImageURL != stub.DataURI() {
		t.Errorf("Expected stub image %s, got %s", stub.DataURI(), profile.ImageURL)
	}
	if profile.Socials != nil {
		t.Errorf("Expected empty socials to be dropped, got %+v", profile.Socials)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Errorf("Expected empty non-nil sources, got %v", result.Sources)
	}
}

func TestScanner_Scan_MissingCredential(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	// No Research / Illustrate expectations: any network call fails the test
	researcher.EXPECT().Ready().Return(llm.ErrMissingCredential)

	s := newTestScanner(t, researcher, illustrator)

	result, err := s.Scan(context.Background(), "ExampleCoin")
	if !errors.Is(err, llm.ErrMissingCredential) {
		t.Errorf("Expected ErrMissingCredential, got %v", err)
	}
	if result != nil {
		t.Errorf("Expected no result, got %+v", result)
	}
}

func TestScanner_Scan_EmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestScanner(t, mocks.NewMockResearcher(ctrl), nil)

	_, err := s.Scan(context.Background(), "   ")
	if !errors.Is(err, models.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}

func TestScanner_Scan_Failures(t *testing.T) {
	transportErr := errors.New("503 Service Unavailable")

	tests := []struct {
		name      string
		response  *llm.ResearchResponse
		callErr   error
		expectErr error
	}{
		{
			name:      "transport failure is propagated",
			callErr:   transportErr,
			expectErr: transportErr,
		},
		{
			name:      "prose only",
			response:  &llm.ResearchResponse{Content: "I could not find this protocol."},
			expectErr: ErrUnparseableReport,
		},
		{
			name:      "broken fence",
			response:  &llm.ResearchResponse{Content: "```json\n{\"protocol\": \n```"},
			expectErr: ErrUnparseableReport,
		},
		{
			name:      "null reply",
			response:  &llm.ResearchResponse{Content: "null"},
			expectErr: ErrUnparseableReport,
		},
		{
			name:      "wrong shape",
			response:  &llm.ResearchResponse{Content: `{"profiles": "none"}`},
			expectErr: ErrUnparseableReport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			researcher := mocks.NewMockResearcher(ctrl)
			researcher.EXPECT().Ready().Return(nil)
			researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(tt.response, tt.callErr)

			s := newTestScanner(t, researcher, mocks.NewMockIllustrator(ctrl))

			result, err := s.Scan(context.Background(), "X")
			if !errors.Is(err, tt.expectErr) {
				t.Errorf("Expected error %v, got %v", tt.expectErr, err)
			}
			if result != nil {
				t.Errorf("Expected no partial result, got %+v", result)
			}
		})
	}
}

func TestScanner_Scan_ImageUsability(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{
		Content: profilesReport("https://x/y.png", "", "data:image/png;base64,AAAA", "not a url"),
	}, nil)
	// Only the empty and the non-URL image trigger a fallback
	illustrator.EXPECT().Illustrate(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	s := newTestScanner(t, researcher, illustrator)

	result, err := s.Scan(context.Background(), "X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"https://x/y.png", "", "data:image/png;base64,AAAA", "not a url"}
	for i, p := range result.Profiles {
		if p.ImageURL != expected[i] {
			t.Errorf("profile %d: expected image %q, got %q", i, expected[i], p.ImageURL)
		}
	}
}

func TestScanner_Scan_ImageFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{
		Content: profilesReport("", " n/a "),
	}, nil)
	illustrator.EXPECT().Illustrate(gomock.Any(), gomock.Any()).Return(nil, errors.New("policy block")).Times(2)

	s := newTestScanner(t, researcher, illustrator)

	result, err := s.Scan(context.Background(), "X")
	if err != nil {
		t.Fatalf("Expected scan to succeed despite image failures, got %v", err)
	}
	if result.Profiles[0].ImageURL != "" {
		t.Errorf("Expected empty image kept, got %q", result.Profiles[0].ImageURL)
	}
	if result.Profiles[1].ImageURL != " n/a " {
		t.Errorf("Expected original image kept, got %q", result.Profiles[1].ImageURL)
	}
}

func TestScanner_Scan_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{
		Content: profilesReport("", "", "", "", ""),
	}, nil)
	illustrator.EXPECT().
		Illustrate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, prompt string) (*llm.Image, error) {
			// Earlier profiles finish last
			var idx int
			fmt.Sscanf(prompt[strings.Index(prompt, "Role")+4:], "%d", &idx)
			time.Sleep(time.Duration(5-idx) * 5 * time.Millisecond)
			return &llm.Image{MIMEType: "image/png", Data: []byte(fmt.Sprintf("img%d", idx))}, nil
		}).
		Times(5)

	s := newTestScanner(t, researcher, illustrator)

	result, err := s.Scan(context.Background(), "X")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, p := range result.Profiles {
		if p.Name != fmt.Sprintf("P%d", i) {
			t.Errorf("Expected profile P%d at index %d, got %s", i, i, p.Name)
		}
		want := (&llm.Image{MIMEType: "image/png", Data: []byte(fmt.Sprintf("img%d", i))}).DataURI()
		if p.ImageURL != want {
			t.Errorf("profile %d: expected %s, got %s", i, want, p.ImageURL)
		}
	}
}

func TestScanner_Scan_AvatarPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	illustrator := mocks.NewMockIllustrator(ctrl)

	diagnosis := strings.Repeat("a", 100) + "OVERFLOW"
	report := fmt.Sprintf(`{"protocol":"X","summary":"s","profiles":[{"name":"A","role":"Chief Hype Officer","cultScore":7,"diagnosis":%q,"verdict":"DANGER"}]}`, diagnosis)

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{Content: report}, nil)
	illustrator.EXPECT().
		Illustrate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, prompt string) (*llm.Image, error) {
			if !strings.Contains(prompt, `"Chief Hype Officer"`) {
				t.Errorf("Expected role in prompt, got %q", prompt)
			}
			if !strings.Contains(prompt, strings.Repeat("a", 100)) {
				t.Error("Expected first 100 characters of diagnosis in prompt")
			}
			if strings.Contains(prompt, "OVERFLOW") {
				t.Error("Expected diagnosis to be truncated")
			}
			return nil, nil
		})

	s := newTestScanner(t, researcher, illustrator)
	if _, err := s.Scan(context.Background(), "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScanner_Scan_NoIllustrator(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{Content: exampleReport}, nil)

	s := newTestScanner(t, researcher, nil)

	result, err := s.Scan(context.Background(), "ExampleCoin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Profiles[0].ImageURL != "" {
		t.Errorf("Expected empty image, got %q", result.Profiles[0].ImageURL)
	}
}

func TestScanner_Scan_LenientReport(t *testing.T) {
	ctrl := gomock.NewController(t)

	researcher := mocks.NewMockResearcher(ctrl)
	content := "Here is what I found:\n```json\n" +
		`{"profiles":[{"name":" B ","role":"CTO","cultScore":"7.6","verdict":"cult leader","imageUrl":"https://img/b.jpg","socials":{"twitter":"https://x.com/b"}},` +
		`{"name":"C","role":"Dev","cultScore":42,"verdict":"???","imageUrl":"https://img/c.jpg"}]}` +
		"\n```\nGood luck."

	researcher.EXPECT().Ready().Return(nil)
	researcher.EXPECT().Research(gomock.Any(), gomock.Any()).Return(&llm.ResearchResponse{
		Content: content,
		Citations: []llm.Citation{
			{URI: "a", Title: "X"},
			{URI: "b", Title: "Y"},
			{URI: "a", Title: "Z"},
		},
	}, nil)

	s := newTestScanner(t, researcher, mocks.NewMockIllustrator(ctrl))

	result, err := s.Scan(context.Background(), "Fallback Protocol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Protocol != "Fallback Protocol" {
		t.Errorf("Expected protocol to fall back to the query, got %q", result.Protocol)
	}
	if result.Summary != models.DefaultSummary {
		t.Errorf("Expected default summary, got %q", result.Summary)
	}

	b := result.Profiles[0]
	if b.Name != "B" || b.CultScore != 8 || b.Verdict != models.VerdictCultLeader {
		t.Errorf("Unexpected first profile: %+v", b)
	}
	if b.Socials == nil || b.Socials.Twitter != "https://x.com/b" {
		t.Errorf("Expected twitter link, got %+v", b.Socials)
	}

	c := result.Profiles[1]
	if c.CultScore != 10 || c.Verdict != models.VerdictCultLeader {
		t.Errorf("Expected clamped score and derived verdict, got %+v", c)
	}

	if len(result.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(result.Sources))
	}
	if result.Sources[0].URI != "a" || result.Sources[0].Title != "X" {
		t.Errorf("Expected first occurrence of 'a' kept, got %+v", result.Sources[0])
	}
}

func TestNewScanner_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	researcher := mocks.NewMockResearcher(ctrl)

	if _, err := NewScanner(nil, nil, config.DefaultScannerConfig(), testLogger()); err == nil {
		t.Error("Expected error for nil researcher")
	}
	if _, err := NewScanner(researcher, nil, nil, testLogger()); err == nil {
		t.Error("Expected error for nil config")
	}

	cfg := config.DefaultScannerConfig()
	cfg.Analysis.UserPrompt = "{{.Protocol"
	if _, err := NewScanner(researcher, nil, cfg, testLogger()); err == nil {
		t.Error("Expected error for invalid template")
	}
}
