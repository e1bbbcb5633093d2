// Package packet
package packet

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"reflect"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		packet   Packet
		expected string
	}{
		{&AddPilot{From: "N123", To: "SERVER", Cid: "1000001", Password: "pass", Rating: fsd.PilotStudent,
			Protocol: 9, SimType: fsd.SimXPlane, RealName: "John: Doe"},
			"#APN123:SERVER:1000001:pass:1:9:4:John Doe"},
		{&AddAtc{From: "EDDM_CTR", To: "SERVER", RealName: "Jane", Cid: "1000002", Password: "pw", Rating: fsd.CTR1,
			Protocol: 9}, "#AAEDDM_CTR:SERVER:Jane:1000002:pw:5:9"},
		{&DeletePilot{From: "N123", Cid: "1000001"}, "#DPN123:1000001"},
		{&ClientIdentification{From: "N123", To: "SERVER", ClientId: 0xde1e, ClientName: "fsd-client", VersionMajor: 0,
			VersionMinor: 3, Cid: "1000001", SysUid: "abc"}, "$IDN123:SERVER:de1e:fsd-client:0:3:1000001:abc"},
		{&PrivateMessage{From: "N123", To: "N456", Message: "hi:\r\nthere"}, "#TMN123:N456:hithere"},
		{&RadioMessage{From: "N123", Frequencies: []fsd.Frequency{118300 * fsd.KHz, fsd.UnicomFrequency}, Message: "hello"},
			"#TMN123:@18300&@22800:hello"},
		{&BroadcastMessage{From: "N123", Wallop: true, Message: "help"}, "#TMN123:*S:help"},
		{&AtcPositionUpdate{From: "EDDM_TWR", Position: fsd.AtcPosition{Frequency: 118700 * fsd.KHz, Facility: fsd.TWR,
			VisibleRange: 50, Rating: fsd.CTR1, Latitude: 48.353, Longitude: 11.786}},
			"%EDDM_TWR:18700:4:50:5:48.353000:11.786000:0"},
		{&AtcPositionUpdate{From: "EDDM_OBS", Position: fsd.AtcPosition{Rating: fsd.Observer}},
			"%EDDM_OBS:99998:0:0:1:0.000000:0.000000:0"},
		{&InterimPilotPositionUpdate{From: "N123", To: "N456", Position: fsd.InterimPilotPosition{Latitude: 48.1,
			Longitude: 16.5, AltitudeTrue: 35000, GroundSpeed: 450, Heading: 90, OnGround: true}},
			"#SBN123:N456:VI:48.100000:16.500000:35000:450:1026"},
		{&FlightPlanMessage{From: "N123", To: "*A", Plan: fsd.FlightPlan{Rules: fsd.RulesIFR, AircraftType: "b738",
			CruiseSpeed: 450, DepartureAirport: "loww", DepartureTime: 930, CruiseAltitude: "FL350",
			DestinationAirport: "eddm", EnrouteHours: 1, EnrouteMinutes: 5, FuelHours: 3, AlternateAirport: "eddn",
			Remarks: "/v/ tcas", Route: "lanux r343 vmb"}},
			"$FPN123:*A:I:B738:450:LOWW:0930:0000:FL350:EDDM:1:5:3:0:EDDN:/v/ tcas:LANUX.R343.VMB"},
		{&CapabilitiesReply{From: "N123", To: "N456", Flags: fsd.CapabilityAtcInfo | fsd.CapabilityInterimPos},
			"$CRN123:N456:CAPS:ATCINFO=1:INTERIMPOS=1"},
		{&ClientQuery{From: "N123", To: "N456", Type: fsd.QueryCapabilities}, "$CQN123:N456:CAPS"},
		{&AtisLine{From: "LOWW_APP", To: "N123", Type: fsd.AtisEnd, Text: "4"}, "$CRLOWW_APP:N123:ATIS:E:4"},
		{&SharedState{From: "EDDM_TWR", To: "@94835", Kind: fsd.SharedBeaconCode, Target: "N123", Value: "1234"},
			"$CQEDDM_TWR:@94835:BC:N123:1234"},
		{&TrackingCommandMessage{From: "EDDM_TWR", Tracking: fsd.TrackingWhoHas, Target: "N123"},
			"$CQEDDM_TWR:@94835:WH:N123"},
		{&TrackingCommandMessage{From: "EDDM_TWR", To: "EDDM_APP", Tracking: fsd.TrackingIHave, Target: "N123"},
			"#PCEDDM_TWR:EDDM_APP:CCP:IH:N123"},
		{&Landline{From: "A", To: "B", Type: fsd.LandlineMonitor, Landline: fsd.LandlineEnd}, "#PCA:B:CCP:EM"},
		{&HelpCommand{From: "EDDM_TWR", Enabled: true, Message: "need help"}, "$CQEDDM_TWR:@94835:HLP:need help"},
		{&BreakCommand{From: "EDDM_TWR"}, "$CQEDDM_TWR:@94835:HI"},
		{&NewInfo{From: "LOWW_ATIS", Letter: "C"}, "$CQLOWW_ATIS:@94835:NEWINFO:C"},
		{&AircraftConfig{From: "N123", Json: "{\"request\":\"full\"}"}, "$CQN123:@94836:ACC:{\"request\":\"full\"}"},
		{&HandoffCancel{From: "A", To: "B", Target: "N123"}, "#PCA:B:CCP:HC:N123"},
		{&FlightStrip{From: "A", To: "B", Target: "N123"}, "#PCA:B:CCP:ST:N123"},
		{&AircraftInfo{From: "N123", To: "N456", AircraftType: "B738", Livery: "AUA"},
			"#SBN123:N456:PI:GEN:EQUIPMENT=B738:LIVERY=AUA"},
		{&LegacyAircraftInfo{From: "N123", To: "N456", Engine: fsd.EnginePiston, AircraftType: "C172"},
			"#SBN123:N456:PI:X:0:0:C172"},
		{&Ping{From: "N123", To: "SERVER", Timestamp: "42"}, "$PIN123:SERVER:42"},
		{&ServerErrorMessage{To: "N123", Code: fsd.Syntax, Parameter: "", Description: "Syntax error"},
			"$ERSERVER:N123:004::Syntax error"},
		{&MetarRequest{From: "N123", Station: "LOWW"}, "$AXN123:SERVER:METAR:LOWW"},
		{&WeatherRequest{From: "N123", Station: "LOWW"}, "$RWN123:SERVER:LOWW"},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := Encode(test.packet)
		if err != nil {
			fail++
			t.Errorf("Encode(%#v) error: %v", test.packet, err)
			continue
		}
		if string(result) != test.expected {
			fail++
			t.Errorf("Encode(%#v) = %q; expected %q", test.packet, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestEncode: %d pass, %d fail", pass, fail)
}

func TestEncodeFieldError(t *testing.T) {
	tests := []struct {
		packet   Packet
		field    string
		expected error
	}{
		{&PrivateMessage{From: "", To: "N456", Message: "hi"}, "callsign", ErrRequiredField},
		{&PrivateMessage{From: "N123", To: "N456", Message: ":"}, "message", ErrRequiredField},
		{&PrivateMessage{From: "N1:23", To: "N456", Message: "hi"}, "callsign", ErrIllegalField},
		{&RadioMessage{From: "N123", Message: "hi"}, "frequencies", ErrRequiredField},
		{&PilotPositionUpdate{From: "N123", Position: fsd.PilotPosition{Transponder: 1280}}, "transponder", ErrIllegalField},
		{&PilotPositionUpdate{From: "N123", Position: fsd.PilotPosition{Latitude: 91}}, "latitude", ErrIllegalField},
		{&FlightPlanMessage{From: "N123", To: "*A", Plan: fsd.FlightPlan{AircraftType: "B738", DepartureAirport: "LOWW"}},
			"destination", ErrRequiredField},
		{&FlightStrip{From: "A", To: "B", Target: "N123", Annotations: make([]string, 10)}, "annotations", ErrIllegalField},
		{&CustomPilotPacket{From: "A", To: "B", Subtype: "X", Tokens: []string{"ok", "bad:token"}}, "tokens[1]", ErrIllegalField},
		{&AircraftConfig{From: "N123", Json: ""}, "json", ErrRequiredField},
		{&MetarRequest{From: "N123"}, "station", ErrRequiredField},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := Encode(test.packet)
		var fieldError *FieldError
		if result != nil || !errors.As(err, &fieldError) || fieldError.Field != test.field || !errors.Is(err, test.expected) {
			fail++
			t.Errorf("Encode(%#v) = %q, %v; expected field %s %v", test.packet, result, err, test.field, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestEncodeFieldError: %d pass, %d fail", pass, fail)
}

// 位置报告经过编码再解码后应当保持一致
func TestPilotPositionRoundTrip(t *testing.T) {
	position := fsd.PilotPosition{
		Latitude:         48.1,
		Longitude:        16.5,
		AltitudeTrue:     35000,
		AltitudePressure: 35000,
		GroundSpeed:      450,
		Heading:          90,
		Mode:             fsd.ModeCharlie,
		Transponder:      2000,
		Rating:           fsd.PilotStudent,
	}
	line, err := Encode(&PilotPositionUpdate{From: "N123", Position: position})
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if string(line) != "@N:N123:2000:1:48.100000:16.500000:35000:450:1024:0" {
		t.Errorf("Encode = %q", line)
	}
	decoded, err := Decode(string(line))
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", line, err)
	}
	update, ok := decoded.(*PilotPositionUpdate)
	if !ok {
		t.Fatalf("Decode(%q) = %T; expected *PilotPositionUpdate", line, decoded)
	}
	if update.From != "N123" || !reflect.DeepEqual(update.Position, position) {
		t.Errorf("Decode(%q) = %#v; expected %#v", line, update.Position, position)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []Packet{
		&HandoffRequest{From: "A", To: "B", Target: "C"},
		&HandoffAccept{From: "A", To: "B", Target: "C"},
		&SharedStateId{From: "A", To: "B", Reply: true},
		&Landline{From: "A", To: "B", Type: fsd.LandlineIntercom, Landline: fsd.LandlineRequest, IP: "10.0.0.1", Port: 6000},
		&FlightStrip{From: "A", To: "B", Target: "N123", Format: 2, Annotations: []string{"1", "", "KLAX"}},
		&AmendedFlightPlan{From: "LOWW_DEL", To: "*A", Target: "N123", Plan: fsd.FlightPlan{Rules: fsd.RulesVFR,
			AircraftType: "C172", DepartureAirport: "LOWW", DestinationAirport: "LOWG", DepartureTime: 1200,
			CruiseAltitude: "5500", Route: "DCT"}},
		&AtisLine{From: "LOWW_APP", To: "N123", Type: fsd.AtisLogoffTime, Text: "20:00z"},
		&WindData{From: "SERVER", To: "N123", Layers: [fsd.WindLayerCount]fsd.WindLayer{{Ceiling: 1000, Direction: 270,
			Speed: 10, Gusting: true}}},
		&CloudData{From: "SERVER", To: "N123", Storm: fsd.StormLayer{Ceiling: 30000, Coverage: 2}, Visibility: 10},
		&TemperatureData{From: "SERVER", To: "N123", Pressure: 2992},
		&AuthResponse{From: "N123", To: "SERVER", Response: "abcdef"},
		&ServerIdentification{From: "SERVER", To: "CLIENT", Challenge: "1234"},
		&Kill{From: "SERVER", To: "N123", Reason: "bye"},
		&Pong{From: "N456", To: "N123", Timestamp: "99"},
		&MetarResponse{From: "SERVER", To: "N123", Metar: "LOWW 121220Z"},
		&AircraftInfoRequest{From: "N123", To: "N456"},
		&CustomAtcPacket{From: "A", To: "B", Subtype: "VECTOR", Tokens: []string{"1", "2"}},
		&DeleteAtc{From: "EDDM_CTR", Cid: "1000002"},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		line, err := Encode(test)
		if err != nil {
			fail++
			t.Errorf("Encode(%#v) error: %v", test, err)
			continue
		}
		decoded, err := Decode(string(line))
		if err != nil || !reflect.DeepEqual(decoded, test) {
			fail++
			t.Errorf("Decode(Encode(%#v)) = %#v, %v", test, decoded, err)
			continue
		}
		pass++
	}
	t.Logf("TestEncodeDecodeRoundTrip: %d pass, %d fail", pass, fail)
}
