// Package engine defines the generative backends the bot can correct
// essays with, and a per-chat engine selection manager.
package engine

import (
	"context"
	"sync"

	"essay-proxy/api/internal/task"
)

type Engine interface {
	Name() string
	GetModel() string
	// Correct runs one non-streaming completion: the composed instruction as
	// the system prompt, blocks as the single user turn.
	Correct(ctx context.Context, system string, blocks []task.ContentBlock, maxTokens int) (string, error)
}

type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
