// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
)

const (
	tempLayerFields  = 2
	windLayerFields  = 6
	cloudLayerFields = 5
)

// WeatherRequest $RW 请求详细天气
type WeatherRequest struct {
	From    string
	To      string
	Station string
}

func (p *WeatherRequest) Command() fsd.ClientCommand { return fsd.RequestWeather }
func (p *WeatherRequest) Category() fsd.Category { return fsd.CategoryWeatherRequest }

func (p *WeatherRequest) Parts() ([]string, error) {
	to := p.To
	if to == "" {
		to = global.FSDServerName
	}
	if err := firstError(requiredField("callsign", p.From), requiredField("station", p.Station)); err != nil {
		return nil, err
	}
	return []string{p.From, to, p.Station}, nil
}

func decodeWeatherRequest(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &WeatherRequest{From: r.text(0), To: r.text(1), Station: r.text(2)}, nil
}

// TemperatureData $TD 温度层与气压
type TemperatureData struct {
	From     string
	To       string
	Layers   [fsd.TempLayerCount]fsd.TempLayer
	Pressure int
}

func (p *TemperatureData) Command() fsd.ClientCommand { return fsd.TempData }
func (p *TemperatureData) Category() fsd.Category { return fsd.CategoryTemperatureData }

func (p *TemperatureData) Parts() ([]string, error) {
	if err := requiredField("to", p.To); err != nil {
		return nil, err
	}
	parts := []string{serverOr(p.From), p.To}
	for _, layer := range p.Layers {
		parts = append(parts, itoa(layer.Ceiling), itoa(layer.Temperature))
	}
	return append(parts, itoa(p.Pressure)), nil
}

func decodeTemperatureData(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &TemperatureData{From: r.text(0), To: r.text(1)}
	for i := range p.Layers {
		offset := 2 + i*tempLayerFields
		p.Layers[i] = fsd.TempLayer{
			Ceiling:     r.integer(offset, "ceiling"),
			Temperature: r.integer(offset+1, "temperature"),
		}
	}
	p.Pressure = r.integer(2+fsd.TempLayerCount*tempLayerFields, "pressure")
	return p, r.err
}

// WindData $WD 风层
type WindData struct {
	From   string
	To     string
	Layers [fsd.WindLayerCount]fsd.WindLayer
}

func (p *WindData) Command() fsd.ClientCommand { return fsd.WindData }
func (p *WindData) Category() fsd.Category { return fsd.CategoryWindData }

func (p *WindData) Parts() ([]string, error) {
	if err := requiredField("to", p.To); err != nil {
		return nil, err
	}
	parts := []string{serverOr(p.From), p.To}
	for _, layer := range p.Layers {
		parts = append(parts, itoa(layer.Ceiling), itoa(layer.Floor), itoa(layer.Direction), itoa(layer.Speed),
			boolToStr(layer.Gusting), itoa(layer.Turbulence))
	}
	return parts, nil
}

func decodeWindData(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &WindData{From: r.text(0), To: r.text(1)}
	for i := range p.Layers {
		offset := 2 + i*windLayerFields
		p.Layers[i] = fsd.WindLayer{
			Ceiling:    r.integer(offset, "ceiling"),
			Floor:      r.integer(offset+1, "floor"),
			Direction:  r.integer(offset+2, "direction"),
			Speed:      r.integer(offset+3, "speed"),
			Gusting:    r.flag(offset + 4),
			Turbulence: r.integer(offset+5, "turbulence"),
		}
	}
	return p, r.err
}

// CloudData $CD 两个云层, 一个雷暴层和能见度
type CloudData struct {
	From       string
	To         string
	Layers     [fsd.CloudLayerCount]fsd.CloudLayer
	Storm      fsd.StormLayer
	Visibility float64
}

func (p *CloudData) Command() fsd.ClientCommand { return fsd.CloudData }
func (p *CloudData) Category() fsd.Category { return fsd.CategoryCloudData }

func (p *CloudData) Parts() ([]string, error) {
	if err := requiredField("to", p.To); err != nil {
		return nil, err
	}
	parts := []string{serverOr(p.From), p.To}
	for _, layer := range p.Layers {
		parts = append(parts, itoa(layer.Ceiling), itoa(layer.Floor), itoa(layer.Coverage),
			boolToStr(layer.Icing), itoa(layer.Turbulence))
	}
	storm := p.Storm
	parts = append(parts, itoa(storm.Ceiling), itoa(storm.Floor), itoa(storm.Coverage), itoa(storm.Deviation),
		itoa(storm.Turbulence))
	return append(parts, utils.FloatToStr(p.Visibility, 2)), nil
}

func decodeCloudData(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &CloudData{From: r.text(0), To: r.text(1)}
	for i := range p.Layers {
		offset := 2 + i*cloudLayerFields
		p.Layers[i] = fsd.CloudLayer{
			Ceiling:    r.integer(offset, "ceiling"),
			Floor:      r.integer(offset+1, "floor"),
			Coverage:   r.integer(offset+2, "coverage"),
			Icing:      r.flag(offset + 3),
			Turbulence: r.integer(offset+4, "turbulence"),
		}
	}
	offset := 2 + fsd.CloudLayerCount*cloudLayerFields
	p.Storm = fsd.StormLayer{
		Ceiling:    r.integer(offset, "ceiling"),
		Floor:      r.integer(offset+1, "floor"),
		Coverage:   r.integer(offset+2, "coverage"),
		Deviation:  r.integer(offset+3, "deviation"),
		Turbulence: r.integer(offset+4, "turbulence"),
	}
	p.Visibility = r.decimal(offset+5, "visibility")
	return p, r.err
}

// Profile 将三个天气报文合并为完整的天气
func Profile(station string, temp *TemperatureData, wind *WindData, cloud *CloudData) fsd.WeatherProfile {
	profile := fsd.WeatherProfile{Station: station}
	if temp != nil {
		profile.Temps = temp.Layers
		profile.Pressure = temp.Pressure
	}
	if wind != nil {
		profile.Winds = wind.Layers
	}
	if cloud != nil {
		profile.Clouds = cloud.Layers
		profile.Storm = cloud.Storm
		profile.Visibility = cloud.Visibility
	}
	return profile
}

func serverOr(from string) string {
	if from == "" {
		return global.FSDServerName
	}
	return from
}
