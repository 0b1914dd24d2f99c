// Package dump implements Egress 2: an append-only JSON-lines file, one
// object per accepted frame. The file is a plain file opened in append mode;
// it is not rotated.
package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"jet1090/internal/modes"
)

// Record is the JSON shape of one accepted-frame line. Fields that were
// unset on the decoded message stay absent (omitempty), never null.
type Record struct {
	Timestamp float64     `json:"timestamp"`
	Frame     string      `json:"frame"`
	Message   MessageView `json:"message"`
}

// MessageView is the tagged-object projection of modes.Message used for
// JSON output; it mirrors the decoded fields a consumer would want without
// exposing internal representation details like raw CPR bits.
type MessageView struct {
	DF   int    `json:"df"`
	ICAO string `json:"icao"`

	Altitude *int    `json:"altitude,omitempty"`
	Squawk   *int    `json:"squawk,omitempty"`
	OnGround *bool   `json:"on_ground,omitempty"`
	Callsign *string `json:"callsign,omitempty"`
	Category *int    `json:"category,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	GroundSpeed *float64 `json:"ground_speed,omitempty"`
	Track       *float64 `json:"track,omitempty"`

	IAS          *int     `json:"ias,omitempty"`
	Mach         *float64 `json:"mach,omitempty"`
	Roll         *float64 `json:"roll,omitempty"`
	VerticalRate *int     `json:"vertical_rate,omitempty"`
}

// Writer serializes accepted frames as newline-delimited JSON. It is safe
// for concurrent use, though the core's single-writer design means it is
// normally driven from one goroutine.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	logger *logrus.Logger
}

// NewWriter wraps out (in the application, an os.File opened in append mode
// for the dump path).
func NewWriter(out io.Writer, logger *logrus.Logger) *Writer {
	return &Writer{out: out, logger: logger}
}

// Write appends one record as a single JSON line. lat and lon are written as
// given and omitted when nil; the application passes the aircraft's latest
// resolved position from the state map, which may come from an earlier frame.
// Write returns I/O errors to the caller; the application then stops writing
// the dump and the core keeps running.
func (w *Writer) Write(ts float64, frameHex string, msg *modes.Message, lat, lon *float64) error {
	view := viewOf(msg)
	view.Lat = lat
	view.Lon = lon

	rec := Record{
		Timestamp: ts,
		Frame:     frameHex,
		Message:   view,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	enc := json.NewEncoder(w.out)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("dump: write record: %w", err)
	}
	return nil
}

func viewOf(msg *modes.Message) MessageView {
	v := MessageView{
		DF:   msg.DF,
		ICAO: msg.ICAO.String(),
	}

	if msg.HasAltitude {
		v.Altitude = &msg.Altitude
	}
	if msg.HasSquawk {
		v.Squawk = &msg.Squawk
	}
	if msg.DF == modes.DFShortAirAirSurveillance || msg.DF == modes.DFLongAirAirSurveillance {
		og := msg.OnGround
		v.OnGround = &og
	}

	if msg.ME.Ident.Callsign != "" {
		cs := msg.ME.Ident.Callsign
		v.Callsign = &cs
		cat := msg.ME.Ident.Category
		v.Category = &cat
	}

	switch {
	case msg.ME.Airborne.HasAltitude:
		v.Altitude = intPtr(msg.ME.Airborne.Altitude)
	case msg.ME.Surface.HasTrack || msg.ME.Surface.HasSpeed:
		if msg.ME.Surface.HasTrack {
			v.Track = &msg.ME.Surface.Track
		}
		if msg.ME.Surface.HasSpeed {
			v.GroundSpeed = &msg.ME.Surface.GroundSpeed
		}
	}

	if msg.ME.Velocity.HasSpeed {
		if msg.ME.Velocity.Subtype == 1 || msg.ME.Velocity.Subtype == 2 {
			v.GroundSpeed = &msg.ME.Velocity.GroundSpeed
		} else {
			v.IAS = &msg.ME.Velocity.IAS
		}
	}
	if msg.ME.Velocity.HasTrack {
		v.Track = &msg.ME.Velocity.Track
	}
	if msg.ME.Velocity.HasVerticalRate {
		v.VerticalRate = intPtr(msg.ME.Velocity.VerticalRate)
	}

	if msg.HasBDS50 {
		if msg.BDS50.HasRoll {
			v.Roll = &msg.BDS50.RollAngle
		}
		if msg.BDS50.HasTrack {
			v.Track = &msg.BDS50.Track
		}
		if msg.BDS50.HasSpeed {
			v.GroundSpeed = &msg.BDS50.GroundSpeed
		}
	}
	if msg.HasBDS60 {
		if msg.BDS60.HasTrack {
			v.Track = &msg.BDS60.Heading
		}
		if msg.BDS60.HasIAS {
			v.IAS = &msg.BDS60.IAS
		}
		if msg.BDS60.HasMach {
			v.Mach = &msg.BDS60.Mach
		}
	}

	return v
}

func intPtr(v int) *int { return &v }
