package textmodel

import (
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/textkernel/textmodel/internal/buffer"
)

// DumpJSON renders a pretty-printed JSON snapshot of the model's
// content, version ids, and decorations — a debugging/golden-test aid,
// not part of the edit path.
func (m *Model) DumpJSON() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkReadable("DumpJSON"); err != nil {
		return "", err
	}

	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "id", m.id); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}
	if doc, err = sjson.Set(doc, "uri", m.uri); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}
	if doc, err = sjson.Set(doc, "versionId", m.versionID); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}
	if doc, err = sjson.Set(doc, "alternativeVersionId", m.alternativeVersionID); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}
	if doc, err = sjson.Set(doc, "eol", string(m.buf.EOL())); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}
	if doc, err = sjson.Set(doc, "value", m.buf.GetValue(buffer.EOLPreferenceTextDefined)); err != nil {
		return "", newError(KindInternal, "DumpJSON", err)
	}

	full := m.buf.FullRange()
	decs, derr := m.decorations.GetDecorationsInRange(m.buf, full)
	if derr != nil {
		return "", newError(KindInternal, "DumpJSON", derr)
	}
	for i, d := range decs {
		path := "decorations." + itoa(int64(i))
		if doc, err = sjson.Set(doc, path+".id", d.ID); err != nil {
			return "", newError(KindInternal, "DumpJSON", err)
		}
		if doc, err = sjson.Set(doc, path+".ownerId", d.OwnerID); err != nil {
			return "", newError(KindInternal, "DumpJSON", err)
		}
		if doc, err = sjson.Set(doc, path+".range", d.Range.String()); err != nil {
			return "", newError(KindInternal, "DumpJSON", err)
		}
		if doc, err = sjson.Set(doc, path+".className", d.Options.ClassName); err != nil {
			return "", newError(KindInternal, "DumpJSON", err)
		}
	}

	return string(pretty.Pretty([]byte(doc))), nil
}
