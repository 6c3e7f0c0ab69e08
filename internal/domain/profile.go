package domain

import (
	"context"
	"encoding/json"
	"time"
)

const ContextProfileKey = "profile"

// Profile collects coarse wall-clock marks through a run so slow stages
// show up in logs and API responses.
type Profile struct {
	Marks   []ProfileMark `json:"marks"`
	TotalMs int64         `json:"totalMs"`

	startTs time.Time
	lastTs  time.Time
}

type ProfileMark struct {
	Name      string `json:"name"`
	ElapsedMs int64  `json:"elapsedMs"`
}

func NewProfile() *Profile {
	now := time.Now()
	return &Profile{startTs: now, lastTs: now}
}

// Mark records the time spent since the previous mark under name.
func (p *Profile) Mark(name string) {
	now := time.Now()
	p.Marks = append(p.Marks, ProfileMark{
		Name:      name,
		ElapsedMs: now.Sub(p.lastTs).Milliseconds(),
	})
	p.lastTs = now
}

func (p *Profile) End() {
	p.TotalMs = time.Since(p.startTs).Milliseconds()
}

// ProfileFromContext hands back the profile carried by ctx, or a throwaway
// one so callers can mark unconditionally.
func ProfileFromContext(ctx context.Context) *Profile {
	profile, ok := ctx.Value(ContextProfileKey).(*Profile)
	if !ok {
		return NewProfile()
	}
	return profile
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p)
}
