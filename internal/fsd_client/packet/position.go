// Package packet
package packet

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
)

const (
	coordinatePrecision = 6
	interimSubtype      = "VI"
)

func coordinate(value float64) string {
	return utils.FloatToStr(value, coordinatePrecision)
}

func checkCoordinate(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return &FieldError{Field: "latitude", Err: fmt.Errorf("%w: %f", ErrIllegalField, latitude)}
	}
	if longitude < -180 || longitude > 180 {
		return &FieldError{Field: "longitude", Err: fmt.Errorf("%w: %f", ErrIllegalField, longitude)}
	}
	return nil
}

// PilotPositionUpdate @ 完整的机组位置报告
type PilotPositionUpdate struct {
	From     string
	Position fsd.PilotPosition
}

func (p *PilotPositionUpdate) Command() fsd.ClientCommand { return fsd.PilotPos }
func (p *PilotPositionUpdate) Category() fsd.Category { return fsd.CategoryPilotPosition }

func (p *PilotPositionUpdate) Parts() ([]string, error) {
	position := &p.Position
	if err := firstError(requiredField("callsign", p.From), checkCoordinate(position.Latitude, position.Longitude)); err != nil {
		return nil, err
	}
	if !position.Transponder.Valid() {
		return nil, &FieldError{Field: "transponder", Err: ErrIllegalField}
	}
	mode := position.Mode
	if mode == 0 {
		mode = fsd.ModeStandby
	}
	pbh := utils.PackPBH(position.Pitch, position.Bank, position.Heading, position.OnGround)
	return []string{mode.String(), p.From, position.Transponder.String(), itoa(int(position.Rating)),
		coordinate(position.Latitude), coordinate(position.Longitude), itoa(position.AltitudeTrue),
		itoa(position.GroundSpeed), fmt.Sprintf("%d", pbh), itoa(position.PressureDelta())}, nil
}

func decodePilotPosition(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	mode, ok := fsd.ParseTransponderMode(r.text(0))
	if !ok {
		r.fail(malformed("mode", r.text(0)))
	}
	transponder, err := fsd.ParseTransponder(r.text(2))
	if err != nil {
		r.fail(malformed("transponder", r.text(2)))
	}
	position := fsd.PilotPosition{
		Mode:         mode,
		Transponder:  transponder,
		Rating:       fsd.ParsePilotRating(r.integer(3, "rating")),
		Latitude:     r.decimal(4, "latitude"),
		Longitude:    r.decimal(5, "longitude"),
		AltitudeTrue: r.integer(6, "altitude"),
		GroundSpeed:  r.integer(7, "groundspeed"),
	}
	position.Pitch, position.Bank, position.Heading, position.OnGround = utils.UnpackPBH(r.unsigned(8, "pbh"))
	position.AltitudePressure = position.AltitudeTrue + r.intOr(9, "pressure_delta", 0)
	return &PilotPositionUpdate{From: r.text(1), Position: position}, r.err
}

// InterimPilotPositionUpdate #SB VI 高频位置, 只发给支持 INTERIMPOS 的客户端
type InterimPilotPositionUpdate struct {
	From     string
	To       string
	Position fsd.InterimPilotPosition
}

func (p *InterimPilotPositionUpdate) Command() fsd.ClientCommand { return fsd.SquawkBox }
func (p *InterimPilotPositionUpdate) Category() fsd.Category { return fsd.CategoryInterimPilotPosition }

func (p *InterimPilotPositionUpdate) Parts() ([]string, error) {
	position := &p.Position
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		checkCoordinate(position.Latitude, position.Longitude),
	); err != nil {
		return nil, err
	}
	pbh := utils.PackPBH(position.Pitch, position.Bank, position.Heading, position.OnGround)
	return []string{p.From, p.To, interimSubtype, coordinate(position.Latitude), coordinate(position.Longitude),
		itoa(position.AltitudeTrue), itoa(position.GroundSpeed), fmt.Sprintf("%d", pbh)}, nil
}

func decodeInterimPilotPosition(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	if !r.require(8) {
		return nil, r.err
	}
	position := fsd.InterimPilotPosition{
		Latitude:     r.decimal(3, "latitude"),
		Longitude:    r.decimal(4, "longitude"),
		AltitudeTrue: r.integer(5, "altitude"),
		GroundSpeed:  r.integer(6, "groundspeed"),
	}
	position.Pitch, position.Bank, position.Heading, position.OnGround = utils.UnpackPBH(r.unsigned(7, "pbh"))
	return &InterimPilotPositionUpdate{From: r.text(0), To: r.text(1), Position: position}, r.err
}

// AtcPositionUpdate % 管制员位置
type AtcPositionUpdate struct {
	From     string
	Position fsd.AtcPosition
}

func (p *AtcPositionUpdate) Command() fsd.ClientCommand { return fsd.AtcPos }
func (p *AtcPositionUpdate) Category() fsd.Category { return fsd.CategoryAtcPosition }

func (p *AtcPositionUpdate) Parts() ([]string, error) {
	position := &p.Position
	if err := firstError(requiredField("callsign", p.From), checkCoordinate(position.Latitude, position.Longitude)); err != nil {
		return nil, err
	}
	frequency := position.Frequency
	if frequency == 0 {
		frequency = fsd.AtcFrequency
	}
	return []string{p.From, frequency.WireOffset(), itoa(int(position.Facility)), itoa(position.VisibleRange),
		itoa(int(position.Rating)), coordinate(position.Latitude), coordinate(position.Longitude),
		itoa(position.Elevation)}, nil
}

func decodeAtcPosition(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	frequency, err := fsd.ParseFrequency(r.text(1))
	if err != nil {
		r.fail(malformed("frequency", r.text(1)))
	}
	position := fsd.AtcPosition{
		Frequency:    frequency,
		Facility:     fsd.ParseFacility(r.integer(2, "facility")),
		VisibleRange: r.integer(3, "range"),
		Rating:       fsd.ParseAtcRating(r.integer(4, "rating")),
		Latitude:     r.decimal(5, "latitude"),
		Longitude:    r.decimal(6, "longitude"),
		Elevation:    r.intOr(7, "elevation", 0),
	}
	return &AtcPositionUpdate{From: r.text(0), Position: position}, r.err
}

// SecondaryAtcPositionUpdate ' 额外的视程中心
type SecondaryAtcPositionUpdate struct {
	From     string
	Position fsd.SecondaryAtcPosition
}

func (p *SecondaryAtcPositionUpdate) Command() fsd.ClientCommand { return fsd.AtcSubVisPoint }
func (p *SecondaryAtcPositionUpdate) Category() fsd.Category { return fsd.CategorySecondaryAtcPosition }

func (p *SecondaryAtcPositionUpdate) Parts() ([]string, error) {
	position := &p.Position
	if err := firstError(requiredField("callsign", p.From), checkCoordinate(position.Latitude, position.Longitude)); err != nil {
		return nil, err
	}
	return []string{p.From, itoa(position.Index), coordinate(position.Latitude), coordinate(position.Longitude)}, nil
}

func decodeSecondaryAtcPosition(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	position := fsd.SecondaryAtcPosition{
		Index:     r.integer(1, "index"),
		Latitude:  r.decimal(2, "latitude"),
		Longitude: r.decimal(3, "longitude"),
	}
	return &SecondaryAtcPositionUpdate{From: r.text(0), Position: position}, r.err
}
