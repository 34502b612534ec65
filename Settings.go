package settings

//============================================= Settings

// Settings is the single owner of every process-wide mutable resource the
// spec calls out in section 5: the RAM pool, the argument-history ring and
// the callback cache. The free-function API spec section 6.4 describes is
// implemented here as methods, so the callback fired synchronously from
// inside SettingsRequest still has exclusive access to state scoped to
// this one invocation (spec section 3.4/5), matching the teacher's own
// "encapsulate global state behind one owner" shape (Mari struct in
// Mari.go holds the mmap, the node pool and the resize/flush signal
// channels as the single source of truth for one open store).
type Settings struct {
	cfg  Config
	root Node
	ram  []byte
	rom  RomDevice

	argHistory    [MaxDepth]int
	callbackCache CallbackCache
}

// Open lays out root, then loads and validates it against rom, repairing
// any corrupt subtree with declared defaults (spec sections 3.3, 4.F).
// The returned Settings is ready to serve requests.
func Open(root Node, rom RomDevice, cfg Config) (*Settings, error) {
	if err := Layout(root, cfg); err != nil {
		return nil, err
	}

	s := &Settings{
		cfg:  cfg,
		root: root,
		ram:  make([]byte, root.Header().RamSize),
		rom:  rom,
	}

	s.validateNode(root, 0, 0, false)
	return s, nil
}

// ResetToDefaults forces every leaf to its declared default and rewrites
// every aggregate CRC, without first consulting ROM contents -- the
// `reset_to_defaults` feature carried forward from original_source/
// settings.c (spec.md is silent on it; see SPEC_FULL.md section 4).
func (s *Settings) ResetToDefaults() Result {
	return s.validateNode(s.root, 0, 0, true)
}

// FlushAll dumps the entire RAM window to ROM, independent of the
// dispatcher's per-request CRC refresh (the `flush_all` feature carried
// forward from original_source/settings.c; see SPEC_FULL.md section 4).
func (s *Settings) FlushAll() error {
	return s.rom.WriteROM(0, s.ram)
}

// RamSize/RomSize expose the root's computed footprint.
func (s *Settings) RamSize() uint32 { return s.root.Header().RamSize }
func (s *Settings) RomSize() uint32 { return s.root.Header().RomSize }

// Root exposes the tree for tests and tooling that want to inspect
// offsets directly.
func (s *Settings) Root() Node { return s.root }
