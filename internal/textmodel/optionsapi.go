package textmodel

// ModelOptions is the snapshot returned by GetOptions.
type ModelOptions struct {
	TabSize            int
	InsertSpaces       bool
	TrimAutoWhitespace bool
}

// GetOptions returns the model's current editing options.
func (m *Model) GetOptions() ModelOptions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ModelOptions{
		TabSize:            m.tabSize,
		InsertSpaces:       m.insertSpaces,
		TrimAutoWhitespace: m.trimAutoWhitespace,
	}
}

// OptionsUpdate is the patch UpdateOptions applies to the recognized
// option keys (tabSize, insertSpaces, trimAutoWhitespace): a nil field
// leaves that option unchanged, and a TabSize that is not positive is
// ignored.
type OptionsUpdate struct {
	TabSize               *int
	InsertSpaces           *bool
	TrimAutoWhitespace     *bool
}

// UpdateOptions applies patch and fires the options-changed listener if
// anything actually changed.
func (m *Model) UpdateOptions(patch OptionsUpdate) error {
	m.mu.Lock()
	if err := m.checkWritable("UpdateOptions"); err != nil {
		m.mu.Unlock()
		return err
	}
	changed := false
	if patch.TabSize != nil && *patch.TabSize > 0 && *patch.TabSize != m.tabSize {
		m.tabSize = *patch.TabSize
		changed = true
	}
	if patch.InsertSpaces != nil && *patch.InsertSpaces != m.insertSpaces {
		m.insertSpaces = *patch.InsertSpaces
		changed = true
	}
	if patch.TrimAutoWhitespace != nil && *patch.TrimAutoWhitespace != m.trimAutoWhitespace {
		m.trimAutoWhitespace = *patch.TrimAutoWhitespace
		changed = true
	}
	cb := m.onOptionsChanged
	m.mu.Unlock()

	if changed && cb != nil {
		cb()
	}
	return nil
}
