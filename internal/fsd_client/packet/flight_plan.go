// Package packet
package packet

import "github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"

func planParts(plan fsd.FlightPlan) []string {
	plan = plan.Normalize()
	return []string{
		plan.Rules.String(),
		plan.AircraftType,
		itoa(plan.CruiseSpeed),
		plan.DepartureAirport,
		fsd.FormatTime(plan.DepartureTime),
		fsd.FormatTime(plan.ActualDepartureTime),
		plan.CruiseAltitude,
		plan.DestinationAirport,
		itoa(plan.EnrouteHours),
		itoa(plan.EnrouteMinutes),
		itoa(plan.FuelHours),
		itoa(plan.FuelMinutes),
		plan.AlternateAirport,
		plan.Remarks,
		plan.Route,
	}
}

// readPlan 从 offset 开始读取计划字段, 航路取剩余全部字段
func readPlan(r *fieldReader, offset int) fsd.FlightPlan {
	return fsd.FlightPlan{
		Rules:               fsd.ParseFlightRules(r.text(offset)),
		AircraftType:        r.text(offset + 1),
		CruiseSpeed:         r.intOr(offset+2, "tas", 0),
		DepartureAirport:    r.text(offset + 3),
		DepartureTime:       r.intOr(offset+4, "departure_time", 0),
		ActualDepartureTime: r.intOr(offset+5, "actual_departure_time", 0),
		CruiseAltitude:      r.text(offset + 6),
		DestinationAirport:  r.text(offset + 7),
		EnrouteHours:        r.intOr(offset+8, "enroute_hours", 0),
		EnrouteMinutes:      r.intOr(offset+9, "enroute_minutes", 0),
		FuelHours:           r.intOr(offset+10, "fuel_hours", 0),
		FuelMinutes:         r.intOr(offset+11, "fuel_minutes", 0),
		AlternateAirport:    r.text(offset + 12),
		Remarks:             r.text(offset + 13),
		Route:               r.rest(offset + 14),
	}
}

func checkPlan(plan *fsd.FlightPlan) error {
	return firstError(
		requiredField("aircraft_type", fsd.SanitizeText(plan.AircraftType)),
		requiredField("departure", fsd.SanitizeText(plan.DepartureAirport)),
		requiredField("destination", fsd.SanitizeText(plan.DestinationAirport)),
	)
}

// FlightPlanMessage $FP 机组提交的计划
type FlightPlanMessage struct {
	From string
	To   string
	Plan fsd.FlightPlan
}

func (p *FlightPlanMessage) Command() fsd.ClientCommand { return fsd.Plan }
func (p *FlightPlanMessage) Category() fsd.Category { return fsd.CategoryFlightPlan }

// Callsign 计划所属的呼号
func (p *FlightPlanMessage) Callsign() string { return p.From }

func (p *FlightPlanMessage) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To), checkPlan(&p.Plan)); err != nil {
		return nil, err
	}
	return append([]string{p.From, p.To}, planParts(p.Plan)...), nil
}

func decodeFlightPlan(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	plan := readPlan(r, 2)
	return &FlightPlanMessage{From: r.text(0), To: r.text(1), Plan: plan}, r.err
}

// AmendedFlightPlan $AM 管制员修改其他机组的计划
type AmendedFlightPlan struct {
	From   string
	To     string
	Target string
	Plan   fsd.FlightPlan
}

func (p *AmendedFlightPlan) Command() fsd.ClientCommand { return fsd.AtcEditPlan }
func (p *AmendedFlightPlan) Category() fsd.Category { return fsd.CategoryFlightPlan }

func (p *AmendedFlightPlan) Callsign() string { return p.Target }

func (p *AmendedFlightPlan) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("target", p.Target),
		checkPlan(&p.Plan),
	); err != nil {
		return nil, err
	}
	return append([]string{p.From, p.To, p.Target}, planParts(p.Plan)...), nil
}

func decodeAmendedFlightPlan(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	plan := readPlan(r, 3)
	return &AmendedFlightPlan{From: r.text(0), To: r.text(1), Target: r.text(2), Plan: plan}, r.err
}
