package history

// Memory is an in-memory store; the REPL uses it when no history path is
// writable, and tests use it directly.
type Memory struct {
	lines []string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(line string) error {
	m.lines = append(m.lines, line)
	return nil
}

func (m *Memory) List(limit int) ([]string, error) {
	lines := m.lines
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
