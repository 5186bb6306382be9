// Package flash turns server-side flash messages into toasts.
//
// The input is the JSON array a web backend renders into the page:
// [["error", "Invalid password"], ["success", "Welcome back, Bob!"], ...].
// Each message is classified by category and content into a level, a
// titled heading and a duration, then delivered to a notifier with a small
// stagger so consecutive toasts do not appear at the same instant.
package flash

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/riordanpawley/autowriter/internal/clock"
	"github.com/riordanpawley/autowriter/internal/notify"
	"github.com/riordanpawley/autowriter/internal/types"
)

// Stagger is the delay between consecutive deliveries.
const Stagger = 100 * time.Millisecond

// ExpiryDuration is how long account-expiry toasts stay on screen.
const ExpiryDuration = 8 * time.Second

// Message is one [category, message] pair.
type Message struct {
	Category string
	Text     string
}

// UnmarshalJSON decodes the two-element array form.
func (m *Message) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("flash message: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("flash message: want [category, message], got %d elements", len(pair))
	}
	m.Category = pair[0]
	m.Text = pair[1]
	return nil
}

// MarshalJSON encodes the two-element array form.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.Category, m.Text})
}

// Parse decodes a flash payload. Empty or whitespace-only input yields no
// messages.
func Parse(data []byte) ([]Message, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("parse flash messages: %w", err)
	}
	return msgs, nil
}

// Toast is the classified form of a message.
type Toast struct {
	Message  string
	Level    types.Level
	Title    string
	Duration time.Duration // 0 = notifier default
}

// Classify maps a message to its toast.
func Classify(m Message) Toast {
	t := Toast{Message: m.Text}
	text := m.Text

	switch strings.ToLower(m.Category) {
	case "error":
		t.Level = types.LevelError
		switch {
		case strings.Contains(text, "Invalid username or password"),
			strings.Contains(text, "Invalid password"):
			t.Title = "🔐 Login Failed"
		case strings.Contains(text, "Account is temporarily locked"):
			t.Title = "🔒 Account Locked"
		case strings.Contains(text, "Account deactivated"):
			t.Title = "❌ Account Deactivated"
		case strings.Contains(text, "Username already exists"):
			t.Title = "👤 User Creation Failed"
		case strings.Contains(text, "trial account has expired"):
			t.Title = "⏰ Trial Expired"
			t.Duration = ExpiryDuration
		case strings.Contains(text, "subscription has expired"):
			t.Title = "📅 Subscription Expired"
			t.Duration = ExpiryDuration
		case strings.Contains(text, "account has expired"):
			t.Title = "⏰ Account Expired"
			t.Duration = ExpiryDuration
		default:
			t.Title = "❌ Error"
		}

	case "success":
		t.Level = types.LevelSuccess
		switch {
		case strings.Contains(text, "Welcome back"):
			t.Title = "🎉 Login Successful"
		case strings.Contains(text, "Goodbye") && strings.Contains(text, "logged out"):
			t.Title = "👋 Logout Successful"
		case strings.Contains(text, "created successfully"):
			t.Title = "✅ User Created"
		case strings.Contains(text, "Content saved successfully"):
			t.Title = "💾 Content Saved"
		case strings.Contains(text, "Content updated successfully"):
			t.Title = "📝 Content Updated"
		case strings.Contains(text, "Content deleted successfully"):
			t.Title = "🗑️ Content Deleted"
		default:
			t.Title = "✅ Success"
		}

	case "warning":
		t.Level = types.LevelWarning
		t.Title = "⚠️ Warning"

	default:
		t.Level = types.LevelInfo
		t.Title = "ℹ️ Information"
	}
	return t
}

// Notifier is the part of the notification manager delivery needs.
type Notifier interface {
	Show(message string, level types.Level, title string, duration time.Duration) notify.Handle
	DefaultDuration() time.Duration
}

// Deliver shows msgs on n, the first immediately and each following one
// Stagger later than the previous. The returned func cancels deliveries
// that have not happened yet.
func Deliver(n Notifier, clk clock.Clock, msgs []Message) (stop func()) {
	if clk == nil {
		clk = clock.Real()
	}

	timers := make([]clock.Timer, 0, len(msgs))
	for i, m := range msgs {
		t := Classify(m)
		show := func() {
			d := t.Duration
			if d == 0 {
				d = n.DefaultDuration()
			}
			n.Show(t.Message, t.Level, t.Title, d)
		}

		if i == 0 {
			show()
			continue
		}
		timers = append(timers, clk.AfterFunc(time.Duration(i)*Stagger, show))
	}

	return func() {
		for _, tm := range timers {
			tm.Stop()
		}
	}
}
