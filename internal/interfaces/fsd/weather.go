// Package fsd
package fsd

const (
	TempLayerCount  = 4
	WindLayerCount  = 4
	CloudLayerCount = 2
)

type TempLayer struct {
	Ceiling     int
	Temperature int
}

type WindLayer struct {
	Ceiling    int
	Floor      int
	Direction  int
	Speed      int
	Gusting    bool
	Turbulence int
}

type CloudLayer struct {
	Ceiling    int
	Floor      int
	Coverage   int
	Icing      bool
	Turbulence int
}

// StormLayer 与云层字段相同, 额外的偏差字段代表雷暴偏离量
type StormLayer struct {
	Ceiling    int
	Floor      int
	Coverage   int
	Deviation  int
	Turbulence int
}

// WeatherProfile 由 $TD $WD $CD 三个报文组成, 每次响应单独构造, 不做缓存
type WeatherProfile struct {
	Station    string
	Temps      [TempLayerCount]TempLayer
	Pressure   int
	Winds      [WindLayerCount]WindLayer
	Clouds     [CloudLayerCount]CloudLayer
	Storm      StormLayer
	Visibility float64
}
