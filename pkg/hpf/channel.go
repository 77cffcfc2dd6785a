package hpf

import (
	"fmt"
	"strconv"

	"github.com/hpftools/hpf2tab/pkg/xmldoc"
)

// Channel is one logical channel's metadata, built once from the
// channel-info chunk. Index is the column position assigned from document
// order; it governs column order in every emitted row.
type Channel struct {
	Index                    int
	Name                     string
	Unit                     string
	ChannelType              string
	AssignedTimeChannelIndex int32
	DataType                 DataType
	DataIndex                int32
	StartTime                Timestamp
	TimeIncrement            float64
	RangeMin                 int16
	RangeMax                 int16
	DataScale                float64
	DataOffset               float64
	SensorScale              float64
	SensorOffset             float64
	PerChannelSampleRate     float64
	PhysicalChannelNumber    int32
	UsesSensorValues         bool
	ThermocoupleType         string
	TemperatureUnit          string
	UseThermocoupleValues    bool
}

// channelInfoRoot is the required root element of the channel-info document.
const channelInfoRoot = "ChannelInformationData"

// channelFields maps recognized channel metadata tags to setters. The
// recognized set is closed: any other tag aborts the decode.
var channelFields = map[string]func(*Channel, string) error{
	"Name":        func(ch *Channel, s string) error { ch.Name = s; return nil },
	"Unit":        func(ch *Channel, s string) error { ch.Unit = s; return nil },
	"ChannelType": func(ch *Channel, s string) error { ch.ChannelType = s; return nil },
	"AssignedTimeChannelIndex": func(ch *Channel, s string) error {
		ch.AssignedTimeChannelIndex = int32(leadingInt(s))
		return nil
	},
	"DataType": func(ch *Channel, s string) error {
		dt, err := ParseDataType(s)
		if err != nil {
			return err
		}
		ch.DataType = dt
		return nil
	},
	"DataIndex": func(ch *Channel, s string) error { ch.DataIndex = int32(leadingInt(s)); return nil },
	"StartTime": func(ch *Channel, s string) error { ch.StartTime = ParseTimestamp(s); return nil },
	"TimeIncrement": func(ch *Channel, s string) error {
		return setFloat(&ch.TimeIncrement, s)
	},
	"RangeMin": func(ch *Channel, s string) error { ch.RangeMin = int16(leadingInt(s)); return nil },
	"RangeMax": func(ch *Channel, s string) error { ch.RangeMax = int16(leadingInt(s)); return nil },
	"DataScale": func(ch *Channel, s string) error {
		return setFloat(&ch.DataScale, s)
	},
	"DataOffset": func(ch *Channel, s string) error {
		return setFloat(&ch.DataOffset, s)
	},
	"SensorScale": func(ch *Channel, s string) error {
		return setFloat(&ch.SensorScale, s)
	},
	"SensorOffset": func(ch *Channel, s string) error {
		return setFloat(&ch.SensorOffset, s)
	},
	"PerChannelSampleRate": func(ch *Channel, s string) error {
		return setFloat(&ch.PerChannelSampleRate, s)
	},
	"PhysicalChannelNumber": func(ch *Channel, s string) error {
		ch.PhysicalChannelNumber = int32(leadingInt(s))
		return nil
	},
	"UsesSensorValues": func(ch *Channel, s string) error {
		return setBool(&ch.UsesSensorValues, s)
	},
	"ThermocoupleType": func(ch *Channel, s string) error { ch.ThermocoupleType = s; return nil },
	"TemperatureUnit":  func(ch *Channel, s string) error { ch.TemperatureUnit = s; return nil },
	"UseThermocoupleValues": func(ch *Channel, s string) error {
		return setBool(&ch.UseThermocoupleValues, s)
	},
}

// setBool accepts only the instrument's literal "True"/"False".
func setBool(dst *bool, s string) error {
	switch s {
	case "True":
		*dst = true
	case "False":
		*dst = false
	default:
		return fmt.Errorf("%w: %q", ErrBadBool, s)
	}
	return nil
}

func setFloat(dst *float64, s string) error {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse float %q: %w", s, err)
	}
	*dst = f
	return nil
}

// decodeChannelInfo decodes the channel-info chunk into the declared group
// id and the channel table, in document order.
func decodeChannelInfo(payload []byte) (groupID int32, channels []Channel, err error) {
	c := newCursor(payload)
	if err = c.skip(chunkPrefixSize); err != nil {
		return 0, nil, err
	}

	if groupID, err = c.readI32(); err != nil {
		return 0, nil, err
	}
	count, err := c.readI32()
	if err != nil {
		return 0, nil, err
	}

	doc, err := c.readCString()
	if err != nil {
		return 0, nil, err
	}
	root, err := xmldoc.Parse(doc)
	if err != nil {
		return 0, nil, fmt.Errorf("channel-info document: %w", err)
	}
	if root.Name != channelInfoRoot {
		return 0, nil, fmt.Errorf("channel-info document: %w: got <%s>, want <%s>",
			ErrWrongRoot, root.Name, channelInfoRoot)
	}

	// Capacity comes from the document, not the declared count; a corrupt
	// count must not size an allocation.
	channels = make([]Channel, 0, len(root.Children))
	for i, el := range root.Children {
		ch := Channel{Index: i}
		for _, fieldEl := range el.Children {
			set, ok := channelFields[fieldEl.Name]
			if !ok {
				return 0, nil, fmt.Errorf("channel %d: %w: <%s>", i, ErrUnknownField, fieldEl.Name)
			}
			if err := set(&ch, fieldEl.Text); err != nil {
				return 0, nil, fmt.Errorf("channel %d field <%s>: %w", i, fieldEl.Name, err)
			}
		}
		// Every channel must declare a datatype here; data chunks size their
		// sample runs by it.
		if ch.DataType.Size == 0 {
			return 0, nil, fmt.Errorf("channel %d: %w: no datatype declared", i, ErrBadDataType)
		}
		channels = append(channels, ch)
	}

	if int32(len(channels)) != count {
		return 0, nil, fmt.Errorf("channel-info declares %d channels, document has %d: %w",
			count, len(channels), ErrChannelCountMismatch)
	}
	return groupID, channels, nil
}
