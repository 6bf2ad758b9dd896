package wm

// DesktopState is a read-only view of one desktop.
type DesktopState struct {
	Index      int      `json:"index" yaml:"index"`
	Active     bool     `json:"active" yaml:"active"`
	MasterSize int      `json:"master_size" yaml:"master_size"`
	Mode       string   `json:"mode" yaml:"mode"`
	Clients    []Window `json:"clients" yaml:"clients"`
	Current    *Window  `json:"current,omitempty" yaml:"current,omitempty"`
}

func desktopState(index int, d *Desktop, active bool) DesktopState {
	st := DesktopState{
		Index:      index,
		Active:     active,
		MasterSize: d.Layout.MasterSize,
		Mode:       d.Layout.Mode.String(),
		Clients:    d.Clients.Windows(),
	}
	if w, ok := d.Clients.Current(); ok {
		st.Current = &w
	}
	if st.Clients == nil {
		st.Clients = []Window{}
	}
	return st
}

// Snapshot describes every desktop in index order.
func (e *Engine) Snapshot() []DesktopState {
	out := make([]DesktopState, e.store.Len())
	for i := range out {
		if i == e.view.Index() {
			out[i] = desktopState(i, &e.view.Desktop, true)
			continue
		}
		d, err := e.store.Desktop(i)
		if err != nil {
			e.log.Debug("Skipping desktop", "desktop", i, "error", err.Error())
		}
		out[i] = desktopState(i, &d, false)
	}
	return out
}

// Layouts returns every desktop's layout in index order.
func (e *Engine) Layouts() []Layout {
	out := make([]Layout, e.store.Len())
	for i := range out {
		if i == e.view.Index() {
			out[i] = e.view.Layout
			continue
		}
		d, err := e.store.Desktop(i)
		if err != nil {
			e.log.Debug("Skipping desktop", "desktop", i, "error", err.Error())
		}
		out[i] = d.Layout
	}
	return out
}

// RestoreLayouts applies saved layouts by desktop index. Invalid entries
// and unknown indexes are skipped.
func (e *Engine) RestoreLayouts(layouts map[int]Layout) {
	for i, l := range layouts {
		if err := l.Validate(); err != nil {
			e.log.Warn("Skipping saved layout", "desktop", i, "error", err.Error())
			continue
		}
		switch {
		case i == e.view.Index():
			e.view.Layout = l
		default:
			if err := e.store.SetLayout(i, l); err != nil {
				e.log.Debug("Skipping saved layout", "desktop", i, "error", err.Error())
			}
		}
	}
	e.Retile()
}
