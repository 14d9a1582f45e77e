package types

import (
	"time"

	"github.com/shanehull/keyinfo/internal/keyinfo"
)

type Announcement struct {
	Ticker           string
	DateTime         time.Time
	Title            string
	PDFURL           string
	IsPriceSensitive bool
}

// Match is an announcement whose document produced at least one key phrase
// or whose ticker is on the watch list.
type Match struct {
	Announcement
	KeyInfo       *keyinfo.Result
	TickerMatched bool
}
