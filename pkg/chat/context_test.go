package chat

import (
	"strings"
	"testing"

	"github.com/solaceapp/solace/pkg/config"
	"github.com/solaceapp/solace/pkg/persona"
)

func testProfile() persona.Profile {
	return persona.NewRegistry().Get("default")
}

func TestBuildWindowsHistory(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)
	history := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
		{Role: RoleAssistant, Content: "four"},
		{Role: RoleUser, Content: "five"},
		{Role: RoleAssistant, Content: "six"},
	}

	req := b.Build("hello", testProfile(), history, nil, false)
	if len(req.Turns) != 4 {
		t.Fatalf("expected window of 4 turns, got %d", len(req.Turns))
	}
	if req.Turns[0].Content != "three" {
		t.Fatalf("expected oldest kept turn to be %q, got %q", "three", req.Turns[0].Content)
	}

	fast := b.Build("hello", testProfile(), history, nil, true)
	if len(fast.Turns) != 2 {
		t.Fatalf("expected fast window of 2 turns, got %d", len(fast.Turns))
	}
	if fast.Turns[0].Content != "five" {
		t.Fatalf("expected %q first in fast window, got %q", "five", fast.Turns[0].Content)
	}
}

func TestBuildTruncatesLongTurns(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)
	long := strings.Repeat("a", 300)
	req := b.Build("hello", testProfile(), []Turn{{Role: RoleUser, Content: long}}, nil, false)
	if got := req.Turns[0].Content; len(got) != 203 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 200-char truncation with ellipsis, got %d chars", len(got))
	}
}

func TestBuildWindowsMemories(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)
	memories := []string{"m1", "m2", "m3", "m4", "m5"}

	req := b.Build("hello", testProfile(), nil, memories, false)
	if len(req.Memories) != 3 {
		t.Fatalf("expected top-3 memories, got %d", len(req.Memories))
	}
	fast := b.Build("hello", testProfile(), nil, memories, true)
	if len(fast.Memories) != 2 {
		t.Fatalf("expected top-2 memories in fast mode, got %d", len(fast.Memories))
	}
}

func TestMemoryUsedSignal(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)

	empty := b.Build("hello", testProfile(), nil, nil, false)
	if empty.MemoryUsed() {
		t.Fatal("empty context must not report memory used")
	}
	withHistory := b.Build("hello", testProfile(), []Turn{{Role: RoleUser, Content: "hi"}}, nil, false)
	if !withHistory.MemoryUsed() {
		t.Fatal("history alone should report memory used")
	}
	withMemory := b.Build("hello", testProfile(), nil, []string{"fact"}, false)
	if !withMemory.MemoryUsed() {
		t.Fatal("memory alone should report memory used")
	}
}

func TestPromptAssemblyOrder(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)
	req := b.Build(
		"What should I do?",
		testProfile(),
		[]Turn{{Role: RoleUser, Content: "I had a rough day"}, {Role: RoleAssistant, Content: "I'm sorry to hear that"}},
		[]string{"User mentioned an upcoming exam"},
		false,
	)
	prompt := req.Prompt()

	ctxIdx := strings.Index(prompt, "Context:")
	memIdx := strings.Index(prompt, "- User mentioned an upcoming exam")
	convIdx := strings.Index(prompt, "Recent conversation:")
	userIdx := strings.Index(prompt, "User: What should I do?")
	cueIdx := strings.Index(prompt, "\nSolace:")

	for name, idx := range map[string]int{"context": ctxIdx, "memory": memIdx, "conversation": convIdx, "user": userIdx, "cue": cueIdx} {
		if idx < 0 {
			t.Fatalf("prompt missing %s section:\n%s", name, prompt)
		}
	}
	if !(ctxIdx < memIdx && memIdx < convIdx && convIdx < userIdx && userIdx < cueIdx) {
		t.Fatalf("prompt sections out of order:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "Solace:") {
		t.Fatalf("prompt must end with the assistant cue:\n%s", prompt)
	}
}

func TestPromptWithoutContextSkipsBlock(t *testing.T) {
	b := NewContextBuilder(config.DefaultConfig().Chat)
	req := b.Build("hi there", testProfile(), nil, nil, false)
	prompt := req.Prompt()
	if strings.Contains(prompt, "Context:") {
		t.Fatalf("empty context must not render a Context block:\n%s", prompt)
	}
	if !strings.HasPrefix(prompt, "User: hi there") {
		t.Fatalf("prompt should start with the user line:\n%s", prompt)
	}
}

func TestDepthBuckets(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		history []Turn
		want    int
	}{
		{"short statement", "ok", nil, 1},
		{"short stressed message", "I'm really stressed about my exam tomorrow, what should I do?", nil, 2},
		{"reflective essay", strings.Repeat("word ", 30) + "why do I feel like I never understand the meaning? Why? How?", []Turn{{Role: RoleUser, Content: "prior"}}, 4},
	}
	for _, tc := range cases {
		if got := Depth(tc.input, tc.history); got != tc.want {
			t.Errorf("%s: Depth = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestFastMode(t *testing.T) {
	if !FastMode("hey, how are you?", nil, 160) {
		t.Error("short shallow message should take the fast path")
	}
	long := strings.Repeat("I wonder why I feel this way? ", 10)
	if FastMode(long, nil, 160) {
		t.Error("long reflective message should not take the fast path")
	}
	if FastMode("short but forced deep? why? feel? wonder?", []Turn{{Role: RoleUser, Content: "x"}}, 160) {
		t.Error("multiple question marks and reflective words should not be fast")
	}
}
