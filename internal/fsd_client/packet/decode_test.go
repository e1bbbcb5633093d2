// Package packet
package packet

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"reflect"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		line     string
		expected Packet
	}{
		{"#APN123:SERVER:1000001:pass:1:9:4:John Doe",
			&AddPilot{From: "N123", To: "SERVER", Cid: "1000001", Password: "pass", Rating: fsd.PilotStudent,
				Protocol: 9, SimType: fsd.SimXPlane, RealName: "John Doe"}},
		{"#AAEDDM_CTR:SERVER:Jane Doe:1000002:pw:5:9",
			&AddAtc{From: "EDDM_CTR", To: "SERVER", RealName: "Jane Doe", Cid: "1000002", Password: "pw",
				Rating: fsd.CTR1, Protocol: 9}},
		{"#DPN123:1000001", &DeletePilot{From: "N123", Cid: "1000001"}},
		{"#DAEDDM_CTR", &DeleteAtc{From: "EDDM_CTR"}},
		{"$DISERVER:CLIENT:VATSIM FSD V3.13:abcdef",
			&ServerIdentification{From: "SERVER", To: "CLIENT", Version: "VATSIM FSD V3.13", Challenge: "abcdef"}},
		{"$DISERVER:CLIENT:abcdef", &ServerIdentification{From: "SERVER", To: "CLIENT", Challenge: "abcdef"}},
		{"$IDN123:SERVER:de1e:vPilot:3:8:1000001:12345:c0ffee",
			&ClientIdentification{From: "N123", To: "SERVER", ClientId: 0xde1e, ClientName: "vPilot", VersionMajor: 3,
				VersionMinor: 8, Cid: "1000001", SysUid: "12345", InitialChallenge: "c0ffee"}},
		{"$ZCSERVER:N123:1a2b", &AuthChallenge{From: "SERVER", To: "N123", Challenge: "1a2b"}},
		{"#TMN123:N456:hi: there", &PrivateMessage{From: "N123", To: "N456", Message: "hi: there"}},
		{"#TMN123:@18300&@21500:hello",
			&RadioMessage{From: "N123", Frequencies: []fsd.Frequency{118300 * fsd.KHz, 121500 * fsd.KHz}, Message: "hello"}},
		{"#TMSERVER:*:notice", &BroadcastMessage{From: "SERVER", Message: "notice"}},
		{"#TMN123:*S:help", &BroadcastMessage{From: "N123", Wallop: true, Message: "help"}},
		{"@N:N123:2000:1:48.100000:16.500000:35000:450:1024:25",
			&PilotPositionUpdate{From: "N123", Position: fsd.PilotPosition{Latitude: 48.1, Longitude: 16.5,
				AltitudeTrue: 35000, AltitudePressure: 35025, GroundSpeed: 450, Heading: 90, Mode: fsd.ModeCharlie,
				Transponder: 2000, Rating: fsd.PilotStudent}}},
		{"#SBN123:N456:VI:48.100000:16.500000:35000:450:1026",
			&InterimPilotPositionUpdate{From: "N123", To: "N456", Position: fsd.InterimPilotPosition{Latitude: 48.1,
				Longitude: 16.5, AltitudeTrue: 35000, GroundSpeed: 450, Heading: 90, OnGround: true}}},
		{"%EDDM_TWR:18700:4:50:5:48.353000:11.786000:0",
			&AtcPositionUpdate{From: "EDDM_TWR", Position: fsd.AtcPosition{Frequency: 118700 * fsd.KHz,
				Facility: fsd.TWR, VisibleRange: 50, Rating: fsd.CTR1, Latitude: 48.353, Longitude: 11.786}}},
		{"'EDDM_TWR:1:48.5:11.5",
			&SecondaryAtcPositionUpdate{From: "EDDM_TWR", Position: fsd.SecondaryAtcPosition{Index: 1,
				Latitude: 48.5, Longitude: 11.5}}},
		{"$HOEDDM_TWR:EDDM_APP:N123", &HandoffRequest{From: "EDDM_TWR", To: "EDDM_APP", Target: "N123"}},
		{"$HAEDDM_APP:EDDM_TWR:N123", &HandoffAccept{From: "EDDM_APP", To: "EDDM_TWR", Target: "N123"}},
		{"#PCEDDM_TWR:EDDM_APP:CCP:HC:N123", &HandoffCancel{From: "EDDM_TWR", To: "EDDM_APP", Target: "N123"}},
		{"$PIN123:SERVER:1700000000", &Ping{From: "N123", To: "SERVER", Timestamp: "1700000000"}},
		{"$POSERVER:N123:1700000000", &Pong{From: "SERVER", To: "N123", Timestamp: "1700000000"}},
		{"$!!SERVER:N123:spamming", &Kill{From: "SERVER", To: "N123", Reason: "spamming"}},
		{"$ERserver:N123:001:N123:Callsign in use",
			&ServerErrorMessage{From: "server", To: "N123", Code: fsd.CallsignInUse, Parameter: "N123",
				Description: "Callsign in use"}},
		{"$CQN123:SERVER:FP:N456",
			&ClientQuery{From: "N123", To: "SERVER", Type: fsd.QueryFlightPlan, Payload: []string{"N456"}}},
		{"$CRN456:N123:RN:John Doe::1",
			&ClientQueryResponse{From: "N456", To: "N123", Type: fsd.QueryRealName, Payload: []string{"John Doe", "", "1"}}},
		{"$CRN456:N123:CAPS:ATCINFO=1:SECPOS=0:NEWTHING=1",
			&CapabilitiesReply{From: "N456", To: "N123", Flags: fsd.CapabilityAtcInfo,
				Pairs: []fsd.KeyValue{{"ATCINFO", "1"}, {"SECPOS", "0"}, {"NEWTHING", "1"}}}},
		{"$CRLOWW_APP:N123:ATIS:Z:20:00z", &AtisLine{From: "LOWW_APP", To: "N123", Type: fsd.AtisLogoffTime, Text: "20:00z"}},
		{"$CQEDDM_TWR:@94835:SC:N123:RWY26", &SharedState{From: "EDDM_TWR", To: "@94835", Kind: fsd.SharedScratchpad,
			Target: "N123", Value: "RWY26"}},
		{"$CQEDDM_TWR:@94835:XX:N123:value", &SharedState{From: "EDDM_TWR", To: "@94835", Kind: "XX",
			Target: "N123", Value: "value"}},
		{"$CQEDDM_TWR:@94835:IT:N123", &TrackingCommandMessage{From: "EDDM_TWR", To: "@94835",
			Tracking: fsd.TrackingStart, Target: "N123"}},
		{"#PCEDDM_TWR:EDDM_APP:CCP:PT:N123", &TrackingCommandMessage{From: "EDDM_TWR", To: "EDDM_APP",
			Tracking: fsd.TrackingPointOut, Target: "N123"}},
		{"$CQEDDM_TWR:@94835:BY", &BreakCommand{From: "EDDM_TWR", To: "@94835", Enabled: true}},
		{"$CQEDDM_TWR:@94835:NOHLP", &HelpCommand{From: "EDDM_TWR", To: "@94835"}},
		{"$CQEDDM_TWR:@94835:NEWATIS:B:wind calm", &NewInfo{From: "EDDM_TWR", To: "@94835", Letter: "B", Text: "wind calm"}},
		{"$CQN123:@94836:ACC:{\"config\":{\"gear_down\":true}}",
			&AircraftConfig{From: "N123", To: "@94836", Json: "{\"config\":{\"gear_down\":true}}"}},
		{"#PCEDDM_TWR:EDDM_APP:CCP:ID", &SharedStateId{From: "EDDM_TWR", To: "EDDM_APP"}},
		{"#PCEDDM_TWR:EDDM_APP:CCP:OK:10.0.0.1:6000", &Landline{From: "EDDM_TWR", To: "EDDM_APP",
			Type: fsd.LandlineOverride, Landline: fsd.LandlineApprove, IP: "10.0.0.1", Port: 6000}},
		{"#PCEDDM_TWR:EDDM_APP:CCP:ST:N123:1:A1:A2", &FlightStrip{From: "EDDM_TWR", To: "EDDM_APP",
			Target: "N123", Format: 1, Annotations: []string{"A1", "A2"}}},
		{"#PCEDDM_TWR:EDDM_APP:VECTOR:1:2", &CustomAtcPacket{From: "EDDM_TWR", To: "EDDM_APP",
			Subtype: "VECTOR", Tokens: []string{"1", "2"}}},
		{"#SBN123:N456:PIR", &AircraftInfoRequest{From: "N123", To: "N456"}},
		{"#SBN456:N123:PI:GEN:EQUIPMENT=B738:AIRLINE=AUA", &AircraftInfo{From: "N456", To: "N123",
			AircraftType: "B738", Airline: "AUA"}},
		{"#SBN456:N123:PI:X:0:1:B738", &LegacyAircraftInfo{From: "N456", To: "N123", Engine: fsd.EngineJet,
			AircraftType: "B738"}},
		{"#SBN456:N123:FSIPI:0:1", &CustomPilotPacket{From: "N456", To: "N123", Subtype: "FSIPI",
			Tokens: []string{"0", "1"}}},
		{"$AXN123:SERVER:METAR:LOWW", &MetarRequest{From: "N123", To: "SERVER", Station: "LOWW"}},
		{"$ARserver:N123:METAR:LOWW 121220Z 29012KT", &MetarResponse{From: "server", To: "N123",
			Metar: "LOWW 121220Z 29012KT"}},
		{"$RWN123:SERVER:LOWW", &WeatherRequest{From: "N123", To: "SERVER", Station: "LOWW"}},
		{"$TDSERVER:N123:1000:15:5000:5:10000:-5:30000:-40:1013",
			&TemperatureData{From: "SERVER", To: "N123", Pressure: 1013, Layers: [fsd.TempLayerCount]fsd.TempLayer{
				{1000, 15}, {5000, 5}, {10000, -5}, {30000, -40}}}},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := Decode(test.line)
		if err != nil {
			fail++
			t.Errorf("Decode(%q) error: %v", test.line, err)
			continue
		}
		if !reflect.DeepEqual(result, test.expected) {
			fail++
			t.Errorf("Decode(%q) = %#v; expected %#v", test.line, result, test.expected)
			continue
		}
		if result.Category() != test.expected.Category() {
			fail++
			t.Errorf("Decode(%q) category = %s", test.line, result.Category())
			continue
		}
		pass++
	}
	t.Logf("TestDecode: %d pass, %d fail", pass, fail)
}

func TestDecodeWeatherLayers(t *testing.T) {
	wind, err := Decode("$WDSERVER:N123:1000:0:270:10:0:0:5000:1000:280:20:1:30:10000:5000:290:30:0:0:30000:10000:300:80:0:100")
	if err != nil {
		t.Fatalf("Decode wind error: %v", err)
	}
	windData, ok := wind.(*WindData)
	if !ok || windData.Layers[1].Direction != 280 || !windData.Layers[1].Gusting || windData.Layers[3].Speed != 80 {
		t.Errorf("Decode wind = %#v", wind)
	}

	cloud, err := Decode("$CDSERVER:N123:3000:2000:4:0:0:12000:8000:8:1:20:40000:5000:2:1:200:9.5")
	if err != nil {
		t.Fatalf("Decode cloud error: %v", err)
	}
	cloudData, ok := cloud.(*CloudData)
	if !ok || cloudData.Layers[1].Coverage != 8 || !cloudData.Layers[1].Icing || cloudData.Storm.Deviation != 1 ||
		cloudData.Visibility != 9.5 {
		t.Errorf("Decode cloud = %#v", cloud)
	}

	temp, _ := Decode("$TDSERVER:N123:1000:15:5000:5:10000:-5:30000:-40:1013")
	profile := Profile("LOWW", temp.(*TemperatureData), windData, cloudData)
	if profile.Station != "LOWW" || profile.Pressure != 1013 || profile.Winds[0].Direction != 270 ||
		profile.Visibility != 9.5 {
		t.Errorf("Profile = %#v", profile)
	}
}

func TestDecodeFailure(t *testing.T) {
	tests := []struct {
		line     string
		expected error
	}{
		{"", ErrEmptyLine},
		{"   ", ErrEmptyLine},
		{"#TMN123:N456", ErrTooFewTokens},
		{"@N:N123:2000:1:48.1:16.5:35000", ErrTooFewTokens},
		{"@Q:N123:2000:1:48.1:16.5:35000:450:1024:25", ErrMalformedField},
		{"@N:N123:2000:1:north:16.5:35000:450:1024:25", ErrMalformedField},
		{"#SBN123:N456:VI:48.1", ErrTooFewTokens},
		{"$CRLOWW_APP:N123:ATIS:Q:text", ErrMalformedField},
		{"$AXN123:SERVER:TAF:LOWW", ErrMalformedField},
		{"$TDSERVER:N123:1000:15:5000:5:10000:-5:30000:cold:1013", ErrMalformedField},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		result, err := Decode(test.line)
		var parseError *ParseError
		if result != nil || !errors.As(err, &parseError) || !errors.Is(err, test.expected) {
			fail++
			t.Errorf("Decode(%q) = %v, %v; expected %v", test.line, result, err, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestDecodeFailure: %d pass, %d fail", pass, fail)
}

// 每种报文少一个字段都返回 ErrTooFewTokens, 不会进入解码函数
func TestDecodeRequireLength(t *testing.T) {
	pass := 0
	fail := 0
	for command, requirement := range fsd.CommandRequirements {
		if requirement.RequireLength <= 1 {
			continue
		}
		tokens := make([]string, requirement.RequireLength-1)
		for i := range tokens {
			tokens[i] = "X"
		}
		line := string(command) + strings.Join(tokens, Delimiter)
		result, err := Decode(line)
		var parseError *ParseError
		if result != nil || !errors.As(err, &parseError) || !errors.Is(err, ErrTooFewTokens) || parseError.Command != command {
			fail++
			t.Errorf("Decode(%q) = %v, %v; expected ErrTooFewTokens", line, result, err)
			continue
		}
		pass++
	}
	t.Logf("TestDecodeRequireLength: %d pass, %d fail", pass, fail)
}

func TestDecodeUnknownCommand(t *testing.T) {
	for _, line := range []string{"$XXN123:SERVER", "hello world", "!SERVER:N123"} {
		result, err := Decode(line)
		if result != nil || err != nil {
			t.Errorf("Decode(%q) = %v, %v; expected nil, nil", line, result, err)
		}
	}
}
