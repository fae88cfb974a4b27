package domain

import (
	"strconv"
	"time"
)

// NewsAttributes is the attribute bundle of the most recent announcement.
// Same shape as an alarm's, minus answer tracking.
type NewsAttributes struct {
	ID            int64     `json:"id"`
	Text          string    `json:"text"`
	Date          time.Time `json:"date"`
	Address       string    `json:"address"`
	Latitude      string    `json:"latitude"`
	Longitude     string    `json:"longitude"`
	Groups        []string  `json:"groups"`
	New           bool      `json:"new"`
	SelfAddressed bool      `json:"self_addressed"`
}

// LastNews returns the title of the most recent announcement, or the
// placeholder when none exist.
func (a *Accessor) LastNews() string {
	news, ok := a.snap.Data.News.Latest()
	if !ok {
		return StateUnknown
	}
	if news.Title == "" {
		return StateUnknown
	}
	return news.Title
}

// LastNewsAttributes returns the most recent announcement's attributes.
// ok is false when the snapshot holds no news.
func (a *Accessor) LastNewsAttributes() (NewsAttributes, bool) {
	news, ok := a.snap.Data.News.Latest()
	if !ok {
		return NewsAttributes{}, false
	}

	groups := make([]string, 0, len(news.Groups))
	for _, groupID := range news.Groups {
		if name, resolved := a.GroupNameByID(groupID); resolved {
			groups = append(groups, name)
		}
	}

	return NewsAttributes{
		ID:            news.ID,
		Text:          news.Text,
		Date:          a.localTime(news.Date),
		Address:       news.Address,
		Latitude:      strconv.FormatFloat(news.Latitude, 'f', -1, 64),
		Longitude:     strconv.FormatFloat(news.Longitude, 'f', -1, 64),
		Groups:        groups,
		New:           news.New,
		SelfAddressed: news.UCRSelfAddressed,
	}, true
}
