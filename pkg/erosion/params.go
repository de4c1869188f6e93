// Package erosion mutates finished height fields with a thermal relaxation
// pass and a droplet-based hydraulic pass.
//
// Every pass takes ownership of the field it is given, mutates it in place
// and returns it normalized to [0, 1]. Callers that need the input afterwards
// must Clone it first.
package erosion

// ThermalParams controls the thermal pass.
type ThermalParams struct {
	Iterations int     `json:"iterations"`
	Talus      float64 `json:"talus"`  // minimum height difference that moves material
	Factor     float64 `json:"factor"` // fraction of each difference moved per sweep
}

// DefaultThermal returns 50 iterations, talus 0.01, factor 0.5.
func DefaultThermal() ThermalParams {
	return ThermalParams{Iterations: 50, Talus: 0.01, Factor: 0.5}
}

// HydraulicParams controls the droplet simulation.
type HydraulicParams struct {
	Drops       int     `json:"drops"`
	Seed        int64   `json:"seed"`
	Inertia     float64 `json:"inertia"`
	Capacity    float64 `json:"capacity"`
	MinSlope    float64 `json:"min_slope"`
	Erosion     float64 `json:"erosion"`
	Deposition  float64 `json:"deposition"`
	Evaporation float64 `json:"evaporation"`
	Lifetime    int     `json:"lifetime"`  // step cap per droplet
	MinWater    float64 `json:"min_water"` // droplet ends below this weight
}

// DefaultHydraulic returns the 2D droplet defaults.
func DefaultHydraulic() HydraulicParams {
	return HydraulicParams{
		Drops:       20000,
		Seed:        1337,
		Inertia:     0.05,
		Capacity:    4.0,
		MinSlope:    0.01,
		Erosion:     0.3,
		Deposition:  0.3,
		Evaporation: 0.01,
		Lifetime:    50,
		MinWater:    0.01,
	}
}

// SubtleHydraulic weathers lightly: fewer, shorter-lived droplets.
func SubtleHydraulic() HydraulicParams {
	p := DefaultHydraulic()
	p.Drops = 5000
	p.Erosion = 0.1
	p.Deposition = 0.1
	p.Evaporation = 0.02
	return p
}

// HeavyHydraulic carves deep channels.
func HeavyHydraulic() HydraulicParams {
	p := DefaultHydraulic()
	p.Drops = 80000
	p.Inertia = 0.3
	p.Capacity = 8.0
	p.Erosion = 0.7
	p.Deposition = 0.2
	p.Lifetime = 120
	return p
}

// Stats summarizes a hydraulic run.
type Stats struct {
	Droplets  int     `json:"droplets"`
	Steps     int     `json:"steps"`
	Eroded    float64 `json:"eroded"`
	Deposited float64 `json:"deposited"`
}
