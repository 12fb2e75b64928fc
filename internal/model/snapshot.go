package model

// PersistedState is the durable part of the application: the three groups
// written to the store under independent keys.
type PersistedState struct {
	Goals   []Goal
	Stats   Stats
	Sources SourceConfig
}

func DefaultPersistedState() PersistedState {
	return PersistedState{
		Goals:   []Goal{},
		Stats:   Stats{},
		Sources: DefaultSourceConfig(),
	}
}

// Preferences are the user settings kept outside the durable store.
type Preferences struct {
	Mode    string
	Options Options
}

func DefaultPreferences() Preferences {
	return Preferences{Mode: DefaultModeKey, Options: DefaultOptions()}
}
