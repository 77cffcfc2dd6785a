package hpf

import (
	"fmt"
	"strings"

	"github.com/hpftools/hpf2tab/pkg/xmldoc"
)

// EventDefinition declares one annotation event schema. Definitions are
// decoded and retained for inspection but never materialized into the table
// output.
type EventDefinition struct {
	Index                 int
	Name                  string
	Description           string
	Class                 int32
	ID                    int32
	Type                  string
	UsesIData1            bool
	UsesIData2            bool
	UsesDData1            bool
	UsesDData2            bool
	UsesDData3            bool
	UsesDData4            bool
	DescriptionIData1     string
	DescriptionIData2     string
	DescriptionDData1     string
	DescriptionDData2     string
	DescriptionDData3     string
	DescriptionDData4     string
	Parameter1            string
	Parameter2            string
	Tolerance             string
	UsesParameter1        bool
	UsesParameter2        bool
	UsesTolerance         bool
	DescriptionParameter1 string
	DescriptionParameter2 string
	DescriptionTolerance  string
}

const eventDefinitionRoot = "EventDefinitionData"

var eventFields = map[string]func(*EventDefinition, string) error{
	"Name":        func(d *EventDefinition, s string) error { d.Name = s; return nil },
	"Description": func(d *EventDefinition, s string) error { d.Description = s; return nil },
	"Class": func(d *EventDefinition, s string) error {
		// Only class 1 (instrument events) exists in the format.
		if leadingInt(s) != 1 {
			return fmt.Errorf("%w: %q", ErrBadEventClass, s)
		}
		d.Class = 1
		return nil
	},
	"ID": func(d *EventDefinition, s string) error {
		id := leadingInt(s)
		if id == 0 {
			return fmt.Errorf("%w: %q", ErrBadEventID, s)
		}
		d.ID = int32(id)
		return nil
	},
	"Type": func(d *EventDefinition, s string) error {
		if !strings.EqualFold(s, "point") {
			return fmt.Errorf("%w: %q", ErrBadEventType, s)
		}
		d.Type = "Point"
		return nil
	},
	"UsesIData1":            func(d *EventDefinition, s string) error { return setBool(&d.UsesIData1, s) },
	"UsesIData2":            func(d *EventDefinition, s string) error { return setBool(&d.UsesIData2, s) },
	"UsesDData1":            func(d *EventDefinition, s string) error { return setBool(&d.UsesDData1, s) },
	"UsesDData2":            func(d *EventDefinition, s string) error { return setBool(&d.UsesDData2, s) },
	"UsesDData3":            func(d *EventDefinition, s string) error { return setBool(&d.UsesDData3, s) },
	"UsesDData4":            func(d *EventDefinition, s string) error { return setBool(&d.UsesDData4, s) },
	"DescriptionIData1":     func(d *EventDefinition, s string) error { d.DescriptionIData1 = s; return nil },
	"DescriptionIData2":     func(d *EventDefinition, s string) error { d.DescriptionIData2 = s; return nil },
	"DescriptionDData1":     func(d *EventDefinition, s string) error { d.DescriptionDData1 = s; return nil },
	"DescriptionDData2":     func(d *EventDefinition, s string) error { d.DescriptionDData2 = s; return nil },
	"DescriptionDData3":     func(d *EventDefinition, s string) error { d.DescriptionDData3 = s; return nil },
	"DescriptionDData4":     func(d *EventDefinition, s string) error { d.DescriptionDData4 = s; return nil },
	"Parameter1":            func(d *EventDefinition, s string) error { d.Parameter1 = s; return nil },
	"Parameter2":            func(d *EventDefinition, s string) error { d.Parameter2 = s; return nil },
	"Tolerance":             func(d *EventDefinition, s string) error { d.Tolerance = s; return nil },
	"UsesParameter1":        func(d *EventDefinition, s string) error { return setBool(&d.UsesParameter1, s) },
	"UsesParameter2":        func(d *EventDefinition, s string) error { return setBool(&d.UsesParameter2, s) },
	"UsesTolerance":         func(d *EventDefinition, s string) error { return setBool(&d.UsesTolerance, s) },
	"DescriptionParameter1": func(d *EventDefinition, s string) error { d.DescriptionParameter1 = s; return nil },
	"DescriptionParameter2": func(d *EventDefinition, s string) error { d.DescriptionParameter2 = s; return nil },
	"DescriptionTolerance":  func(d *EventDefinition, s string) error { d.DescriptionTolerance = s; return nil },
}

func decodeEventDefinitions(payload []byte) ([]EventDefinition, error) {
	c := newCursor(payload)
	if err := c.skip(chunkPrefixSize); err != nil {
		return nil, err
	}

	count, err := c.readI32()
	if err != nil {
		return nil, err
	}
	doc, err := c.readCString()
	if err != nil {
		return nil, err
	}
	root, err := xmldoc.Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("event-definition document: %w", err)
	}
	if root.Name != eventDefinitionRoot {
		return nil, fmt.Errorf("event-definition document: %w: got <%s>, want <%s>",
			ErrWrongRoot, root.Name, eventDefinitionRoot)
	}

	// Sized from the document, not the declared count, which is untrusted.
	defs := make([]EventDefinition, 0, len(root.Children))
	for i, el := range root.Children {
		def := EventDefinition{Index: i}
		for _, fieldEl := range el.Children {
			set, ok := eventFields[fieldEl.Name]
			if !ok {
				return nil, fmt.Errorf("event definition %d: %w: <%s>", i, ErrUnknownField, fieldEl.Name)
			}
			if err := set(&def, fieldEl.Text); err != nil {
				return nil, fmt.Errorf("event definition %d field <%s>: %w", i, fieldEl.Name, err)
			}
		}
		defs = append(defs, def)
	}

	if int32(len(defs)) != count {
		return nil, fmt.Errorf("event-definition declares %d definitions, document has %d",
			count, len(defs))
	}
	return defs, nil
}

// decodeEventDataCount reads an event-data chunk's record count. The records
// themselves are discarded; the chunk is acknowledged for structural
// completeness only.
func decodeEventDataCount(payload []byte) (int64, error) {
	c := newCursor(payload)
	if err := c.skip(chunkPrefixSize); err != nil {
		return 0, err
	}
	return c.readI64()
}
