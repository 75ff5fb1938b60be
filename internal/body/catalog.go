package body

// Planet sizes are roughly 1:3.7 billion of the real bodies and orbital
// distances roughly 1:149 billion; periods are in Earth years.

// DefaultCatalog returns the built-in solar system, parents before children
func DefaultCatalog() []Definition {
	return []Definition{
		{Name: "Sun", Kind: KindStar, Radius: 3, Color: "#fdb813", Texture: "textures/sun/sun-color.webp", SpinRate: 0.004},

		{Name: "Mercury", Kind: KindPlanet, Radius: 0.07, Color: "#aaaaaa", Texture: "textures/mercury/mercury-color-1k.webp",
			SpinRate: 0.0008, Period: 0.24, SemiMajorAxis: 6.78, Eccentricity: 0.206},
		{Name: "Venus", Kind: KindPlanet, Radius: 0.174, Color: "#b38c5f", Texture: "textures/venus/venus-color-1k.webp",
			SpinRate: -0.0004, AxialTilt: 177, Period: 0.615, SemiMajorAxis: 7.44, Eccentricity: 0.007},
		{Name: "Earth", Kind: KindPlanet, Radius: 0.184, Color: "#0077ff", Texture: "textures/earth/earth-color-1k.webp",
			SpinRate: 0.01, AxialTilt: 23.4, Period: 1, SemiMajorAxis: 8, Eccentricity: 0.017},
		{Name: "Mars", Kind: KindPlanet, Radius: 0.098, Color: "#ff3300", Texture: "textures/mars/mars-color-1k.webp",
			SpinRate: 0.0097, AxialTilt: 25.2, Period: 1.88, SemiMajorAxis: 9.04, Eccentricity: 0.093},
		{Name: "Jupiter", Kind: KindPlanet, Radius: 2.024, Color: "#7d4739", Texture: "textures/jupiter/jupiter-color.webp",
			SpinRate: 0.02, AxialTilt: 3.1, Period: 11.86, SemiMajorAxis: 16.4, Eccentricity: 0.049},
		{Name: "Saturn", Kind: KindPlanet, Radius: 1.748, Color: "#be9352", Texture: "textures/saturn/saturn-color.webp",
			SpinRate: 0.018, AxialTilt: 26.7, Period: 29.46, SemiMajorAxis: 25.08, Eccentricity: 0.056},
		{Name: "Uranus", Kind: KindPlanet, Radius: 0.736, Color: "#7fffd4", Texture: "textures/uranus/uranus-color.webp",
			SpinRate: 0.014, AxialTilt: 97.8, Period: 84.01, SemiMajorAxis: 44.38, Eccentricity: 0.047},
		{Name: "Neptune", Kind: KindPlanet, Radius: 0.718, Color: "#0000ff", Texture: "textures/neptune/neptune-color.webp",
			SpinRate: 0.016, AxialTilt: 28.3, Period: 164.79, SemiMajorAxis: 66.14, Eccentricity: 0.009},
		{Name: "Ceres", Kind: KindDwarfPlanet, Radius: 0.015, Color: "#7b7b7b",
			SpinRate: 0.01, Period: 4.6, SemiMajorAxis: 12, Eccentricity: 0.076},
		{Name: "Pluto", Kind: KindDwarfPlanet, Radius: 0.035, Color: "#a0a0a0",
			SpinRate: 0.005, AxialTilt: 120, Period: 248, SemiMajorAxis: 98, Eccentricity: 0.249},

		{Name: "Moon", Kind: KindMoon, ParentName: "Earth", Radius: 0.05, Color: "#888888", Texture: "textures/luna/moon-color-512.webp",
			SpinRate: 0.003, Period: 0.0748, Distance: 0.3},
		{Name: "Phobos", Kind: KindMoon, ParentName: "Mars", Radius: 0.001, Color: "#777777", SpinRate: 0.03, Period: 0.03, Distance: 0.15},
		{Name: "Deimos", Kind: KindMoon, ParentName: "Mars", Radius: 0.0005, Color: "#666666", SpinRate: 0.008, Period: 0.07, Distance: 0.25},
		{Name: "Io", Kind: KindMoon, ParentName: "Jupiter", Radius: 0.06, Color: "#ffcc00", SpinRate: 0.015, Period: 0.004, Distance: 0.4},
		{Name: "Europa", Kind: KindMoon, ParentName: "Jupiter", Radius: 0.045, Color: "#ccddff", SpinRate: 0.01, Period: 0.009, Distance: 0.65},
		{Name: "Ganymede", Kind: KindMoon, ParentName: "Jupiter", Radius: 0.075, Color: "#aaaaaa", SpinRate: 0.012, Period: 0.022, Distance: 1.0},
		{Name: "Callisto", Kind: KindMoon, ParentName: "Jupiter", Radius: 0.07, Color: "#888888", SpinRate: 0.008, Period: 0.051, Distance: 1.5},
		{Name: "Titan", Kind: KindMoon, ParentName: "Saturn", Radius: 0.075, Color: "#ff9933", SpinRate: 0.005, Period: 0.038, Distance: 1.2},
		{Name: "Enceladus", Kind: KindMoon, ParentName: "Saturn", Radius: 0.007, Color: "#ffffff", SpinRate: 0.02, Period: 0.0074, Distance: 0.5},
		{Name: "Triton", Kind: KindMoon, ParentName: "Neptune", Radius: 0.07, Color: "#ddddff", SpinRate: -0.015, Period: 0.063, Distance: 0.8},

		{Name: "Saturn's Rings", Kind: KindRing, ParentName: "Saturn", InnerRadius: 2.3, Radius: 3.7, Color: "#c9b38a",
			Texture: "textures/saturn/2k_saturn_ring_alpha.png"},
		{Name: "Uranus's Rings", Kind: KindRing, ParentName: "Uranus", InnerRadius: 0.96, Radius: 1.4, Color: "#afeeee"},
	}
}
