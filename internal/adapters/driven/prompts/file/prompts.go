// Package file provides a prompt store backed by user-editable files.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk, with
// fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts. These are used when
// user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptQuestionSystem: `You are an expert technical interviewer. Generate thoughtful, relevant interview questions based on the candidate's resume and reference materials.

Guidelines:
- Ask questions that assess both theoretical knowledge and practical experience
- Build upon previous questions naturally
- Vary difficulty appropriately
- Be specific and clear
- Focus on topics mentioned in the resume or reference materials`,

	driven.PromptQuestion: `Generate interview question %d of %d.

CANDIDATE RESUME:
%s

REFERENCE MATERIALS:
%s

PREVIOUS QUESTIONS:
%s

Generate a single, clear interview question that:
1. Is relevant to the candidate's background
2. Assesses important skills for the role
3. Doesn't repeat previous questions
4. Can be answered in 1-3 minutes

Return ONLY the question text, nothing else.`,

	driven.PromptEvaluateSystem: `You are an expert interviewer evaluating candidate responses. Provide fair, constructive feedback.

Evaluate answers on:
- Correctness: Technical accuracy
- Completeness: Coverage of key points
- Clarity: Communication effectiveness
- Depth: Understanding demonstrated

Return your evaluation as JSON with this exact structure:
{
    "correctness_score": 0-10,
    "completeness_score": 0-10,
    "clarity_score": 0-10,
    "overall_score": 0-10,
    "feedback": "Constructive feedback here",
    "strengths": ["strength 1", "strength 2"],
    "improvements": ["area 1", "area 2"]
}`,

	driven.PromptEvaluate: `Evaluate this interview response:

QUESTION:
%s

CANDIDATE'S ANSWER:
%s

REFERENCE CONTEXT:
%s

Provide a thorough evaluation in JSON format.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.parley/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".parley", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Falls back to the embedded default if the file is unreadable.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
