package game

// Cue is a one-shot presentation event (sound, flash) raised by the
// simulation and drained by the frontend.
type Cue int

const (
	CueShot Cue = iota
	CueHit
	CueKill
	CuePickup
	CueHurt
	CueReloadStart
	CueReloadEnd
	CueEmpty
	CueGate
	CueAmbientStart
	CueAmbientStop
	CueLevelClear
)

var cueNames = [...]string{
	CueShot:         "shot",
	CueHit:          "hit",
	CueKill:         "kill",
	CuePickup:       "pickup",
	CueHurt:         "hurt",
	CueReloadStart:  "reload-start",
	CueReloadEnd:    "reload-end",
	CueEmpty:        "empty",
	CueGate:         "gate",
	CueAmbientStart: "ambient-start",
	CueAmbientStop:  "ambient-stop",
	CueLevelClear:   "level-clear",
}

func (c Cue) String() string {
	if c >= 0 && int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "cue?"
}

// Message is a short on-screen notice that expires.
type Message struct {
	Text      string
	Remaining float64
}

const maxMessages = 4

func (s *GameSession) emit(c Cue) {
	s.cues = append(s.cues, c)
}

// DrainCues returns the cues raised since the last call and clears them.
func (s *GameSession) DrainCues() []Cue {
	out := s.cues
	s.cues = nil
	return out
}

func (s *GameSession) pushMessage(text string) {
	s.messages = append(s.messages, Message{Text: text, Remaining: s.config.Level.MessageDuration})
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

func (s *GameSession) updateMessages(dt float64) {
	kept := s.messages[:0]
	for _, m := range s.messages {
		m.Remaining -= dt
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	s.messages = kept
}

// Messages returns the live messages, oldest first.
func (s *GameSession) Messages() []Message {
	return s.messages
}

// LatestMessage returns the newest live message text, or "".
func (s *GameSession) LatestMessage() string {
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1].Text
}
