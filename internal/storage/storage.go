package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	prefixArena    = "arena/"
)

// GameMode represents the game mode
type GameMode int

const (
	ModeHumanVsHuman GameMode = iota
	ModeHumanVsComputer
	ModeComputerVsComputer
)

// PlayerColor represents which color the human plays against the computer
type PlayerColor int

const (
	ColorWhite PlayerColor = iota
	ColorBlack
)

// Difficulty and board size bounds, mirrored from the engine and board.
const (
	MinDifficulty     = 1
	MaxDifficulty     = 10
	DefaultDifficulty = 5
	DefaultBoardSize  = 10
	MinBoardSize      = 6
	MaxBoardSize      = 26
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string      `json:"username"`
	Difficulty   int         `json:"difficulty"`
	BoardSize    int         `json:"board_size"`
	GameMode     GameMode    `json:"game_mode"`
	PlayerColor  PlayerColor `json:"player_color"`
	SoundEnabled bool        `json:"sound_enabled"`
	ShowHover    bool        `json:"show_hover"`
	LastPlayed   time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		Difficulty:   DefaultDifficulty,
		BoardSize:    DefaultBoardSize,
		GameMode:     ModeHumanVsComputer,
		PlayerColor:  ColorWhite,
		SoundEnabled: true,
		ShowHover:    true,
		LastPlayed:   time.Now(),
	}
}

// normalize repairs values written by older or hand-edited databases.
func (p *UserPreferences) normalize() {
	if p.Difficulty < MinDifficulty || p.Difficulty > MaxDifficulty {
		p.Difficulty = DefaultDifficulty
	}
	if p.BoardSize < MinBoardSize || p.BoardSize > MaxBoardSize {
		p.BoardSize = DefaultBoardSize
	}
	if p.GameMode < ModeHumanVsHuman || p.GameMode > ModeComputerVsComputer {
		p.GameMode = ModeHumanVsComputer
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int            `json:"games_played"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	WinsByMode     map[string]int `json:"wins_by_mode"`
	WinsByDiff     map[string]int `json:"wins_by_difficulty"`
	WinsBySize     map[string]int `json:"wins_by_size"`
	Captures       int            `json:"captures"`
	Upgrades       int            `json:"upgrades"`
	TotalPlayTime  time.Duration  `json:"total_play_time"`
	LongestWinStrk int            `json:"longest_win_streak"`
	CurrentStreak  int            `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByMode: make(map[string]int),
		WinsByDiff: make(map[string]int),
		WinsBySize: make(map[string]int),
	}
}

// GameResult represents the result of a completed game
type GameResult struct {
	Won        bool
	Draw       bool
	Mode       GameMode
	Difficulty int
	BoardSize  int
	Captures   int
	Upgrades   int
	Duration   time.Duration
}

// ArenaRun summarises one computer-vs-computer batch.
type ArenaRun struct {
	ID         string        `json:"id"`
	Started    time.Time     `json:"started"`
	BoardSize  int           `json:"board_size"`
	White      int           `json:"white_difficulty"`
	Black      int           `json:"black_difficulty"`
	Games      int           `json:"games"`
	WhiteWins  int           `json:"white_wins"`
	BlackWins  int           `json:"black_wins"`
	Unfinished int           `json:"unfinished"`
	Duration   time.Duration `json:"duration"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// OpenInMemory opens a database that lives only for the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if _, err := s.getJSON(keyPreferences, prefs); err != nil {
		return prefs, err
	}
	prefs.normalize()
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.getJSON(keyStats, stats)
	if stats.WinsBySize == nil {
		stats.WinsBySize = make(map[string]int)
	}
	return stats, err
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalPlayTime += result.Duration
	stats.Captures += result.Captures
	stats.Upgrades += result.Upgrades

	// Mode key for stats
	modeKey := "hvh"
	switch result.Mode {
	case ModeHumanVsComputer:
		modeKey = "hvc"
	case ModeComputerVsComputer:
		modeKey = "cvc"
	}
	diffKey := fmt.Sprintf("level%d", result.Difficulty)
	sizeKey := fmt.Sprintf("%dx%d", result.BoardSize, result.BoardSize)

	if result.Draw {
		stats.Draws++
		stats.CurrentStreak = 0
	} else if result.Won {
		stats.Wins++
		stats.CurrentStreak++
		if stats.CurrentStreak > stats.LongestWinStrk {
			stats.LongestWinStrk = stats.CurrentStreak
		}
		stats.WinsByMode[modeKey]++
		if result.Mode == ModeHumanVsComputer {
			stats.WinsByDiff[diffKey]++
		}
		stats.WinsBySize[sizeKey]++
	} else {
		stats.Losses++
		stats.CurrentStreak = 0
	}

	return s.SaveStats(stats)
}

// GetWinRate returns the win rate as a percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.GamesPlayed) * 100
}

// SaveArenaRun stores an arena batch summary under its ID.
func (s *Storage) SaveArenaRun(run *ArenaRun) error {
	return s.putJSON(prefixArena+run.ID, run)
}

// ArenaRuns returns all stored arena runs, newest first.
func (s *Storage) ArenaRuns() ([]ArenaRun, error) {
	var runs []ArenaRun

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixArena)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var run ArenaRun
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &run)
			})
			if err != nil {
				return err
			}
			runs = append(runs, run)
		}
		return nil
	})

	sort.Slice(runs, func(i, j int) bool { return runs[i].Started.After(runs[j].Started) })
	return runs, err
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value at key into v. It reports false, with v left
// untouched, if the key does not exist.
func (s *Storage) getJSON(key string, v any) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
	return found, err
}
