package hpf

import (
	"errors"
	"testing"
)

func eventDefChunk(count int32, doc string) []byte {
	return newChunkBuilder(KindEventDefinition).i32(count).cstring(doc).bytes()
}

func TestDecodeEventDefinitions(t *testing.T) {
	doc := "<EventDefinitionData><EventDefinition>" +
		"<Name>Trigger</Name>" +
		"<Description>start of sweep</Description>" +
		"<Class>1</Class>" +
		"<ID>3</ID>" +
		"<Type>Point</Type>" +
		"<UsesIData1>True</UsesIData1>" +
		"<UsesDData1>False</UsesDData1>" +
		"</EventDefinition></EventDefinitionData>"

	defs, err := decodeEventDefinitions(eventDefChunk(1, doc))
	if err != nil {
		t.Fatalf("decodeEventDefinitions(): %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("decoded %d definitions, want 1", len(defs))
	}
	d := defs[0]
	if d.Name != "Trigger" || d.Class != 1 || d.ID != 3 || d.Type != "Point" {
		t.Errorf("definition = %+v", d)
	}
	if !d.UsesIData1 || d.UsesDData1 {
		t.Errorf("bool fields = %+v", d)
	}
}

func TestDecodeEventDefinitionsTypeCaseInsensitive(t *testing.T) {
	doc := "<EventDefinitionData><EventDefinition>" +
		"<Class>1</Class><ID>1</ID><Type>point</Type>" +
		"</EventDefinition></EventDefinitionData>"
	defs, err := decodeEventDefinitions(eventDefChunk(1, doc))
	if err != nil {
		t.Fatalf("decodeEventDefinitions(): %v", err)
	}
	if defs[0].Type != "Point" {
		t.Errorf("Type = %q, want canonical Point", defs[0].Type)
	}
}

func TestDecodeEventDefinitionsBadClass(t *testing.T) {
	doc := "<EventDefinitionData><EventDefinition>" +
		"<Class>2</Class>" +
		"</EventDefinition></EventDefinitionData>"
	_, err := decodeEventDefinitions(eventDefChunk(1, doc))
	if !errors.Is(err, ErrBadEventClass) {
		t.Fatalf("decodeEventDefinitions() = %v, want ErrBadEventClass", err)
	}
}

func TestDecodeEventDefinitionsBadID(t *testing.T) {
	doc := "<EventDefinitionData><EventDefinition>" +
		"<Class>1</Class><ID>0</ID>" +
		"</EventDefinition></EventDefinitionData>"
	_, err := decodeEventDefinitions(eventDefChunk(1, doc))
	if !errors.Is(err, ErrBadEventID) {
		t.Fatalf("decodeEventDefinitions() = %v, want ErrBadEventID", err)
	}
}

func TestDecodeEventDataCount(t *testing.T) {
	payload := newChunkBuilder(KindEventData).i64(42).raw(make([]byte, 100)).bytes()
	count, err := decodeEventDataCount(payload)
	if err != nil {
		t.Fatalf("decodeEventDataCount(): %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}
}

func TestDecodeEventDefinitionsCorruptCount(t *testing.T) {
	doc := "<EventDefinitionData><EventDefinition>" +
		"<Class>1</Class><ID>1</ID><Type>Point</Type>" +
		"</EventDefinition></EventDefinitionData>"
	for _, count := range []int32{1 << 30, -5} {
		if _, err := decodeEventDefinitions(eventDefChunk(count, doc)); err == nil {
			t.Errorf("decodeEventDefinitions(count=%d) succeeded, want count mismatch", count)
		}
	}
}
