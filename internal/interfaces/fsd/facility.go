// Package fsd
package fsd

type FacilityModel struct {
	Id        int    `json:"id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
}

// Facility 管制席位类型, 报文中直接使用序号
type Facility int

const (
	FacilityUnknown Facility = iota
	FSS
	DEL
	GND
	TWR
	APP
	CTR
)

var Facilities = []FacilityModel{
	{0, "OBS", "Observer"},
	{1, "FSS", "Flight Service Station"},
	{2, "DEL", "Clearance Delivery"},
	{3, "GND", "Ground"},
	{4, "TWR", "Tower"},
	{5, "APP", "Approach/Departure"},
	{6, "CTR", "Enroute"},
}

func ParseFacility(value int) Facility {
	if value < 0 || value > int(CTR) {
		return FacilityUnknown
	}
	return Facility(value)
}

func (f Facility) String() string {
	return Facilities[ParseFacility(int(f))].ShortName
}

func (f Facility) Index() int {
	return int(f)
}
