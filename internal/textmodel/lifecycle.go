package textmodel

import "github.com/textkernel/textmodel/internal/buffer"

// GetLanguageIdentifier returns the model's current language id, or ""
// if SetMode was never called.
func (m *Model) GetLanguageIdentifier() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.languageID
}

// GetLanguageIdAtPosition returns the language id in effect at pos.
// This model has no per-token embedded-language tracking, so it always
// matches GetLanguageIdentifier; hosts embedding multiple languages in
// one buffer (Markdown code fences, say) attach that distinction at
// the tokenizer level via Token.Type instead.
func (m *Model) GetLanguageIdAtPosition(pos buffer.Position) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("GetLanguageIdAtPosition"); err != nil {
		return "", err
	}
	return m.languageID, nil
}

// SetMode changes the model's language id and fires onDidChangeLanguage.
// Callers that also need a new tokenizer should call SetTokenizer
// separately (the two are independent: a language id is metadata, a
// tokenizer is behavior).
func (m *Model) SetMode(languageID string) error {
	m.mu.Lock()
	if err := m.checkWritable("SetMode"); err != nil {
		m.mu.Unlock()
		return err
	}
	changed := m.languageID != languageID
	m.languageID = languageID
	cb := m.onLanguageChanged
	m.mu.Unlock()

	if changed && cb != nil {
		cb()
	}
	return nil
}

// OnBeforeAttached records that one more editor view is attaching to
// this model.
func (m *Model) OnBeforeAttached() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachedCount++
}

// OnBeforeDetached records that one editor view is detaching from this
// model. Detaching a model with no attached views is a no-op.
func (m *Model) OnBeforeDetached() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attachedCount > 0 {
		m.attachedCount--
	}
}

// IsAttachedToEditor reports whether any editor view currently has this
// model attached.
func (m *Model) IsAttachedToEditor() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attachedCount > 0
}

// Equals reports whether other is the same model (by its stable
// identity), not whether their contents happen to match.
func (m *Model) Equals(other *Model) bool {
	if other == nil {
		return false
	}
	return m.ID() == other.ID()
}
