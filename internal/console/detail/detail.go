package detail

// Detail is a tagged union holding the vertical-specific payload of a service.
// Exactly one variant pointer is non-nil, matching the Vertical tag. Use
// Defaults to obtain a well-formed value for any vertical.
type Detail struct {
	Vertical   Vertical
	Lodging    *LodgingDetail
	Dining     *DiningDetail
	Experience *ExperienceDetail
}

// LodgingAmenities are the included-amenity flags of a lodging service.
type LodgingAmenities struct {
	Breakfast      bool `json:"desayuno"`
	WiFi           bool `json:"wifi"`
	AirConditioner bool `json:"aire_acondicionado"`
	TV             bool `json:"tv"`
	Safe           bool `json:"caja_fuerte"`
	Pool           bool `json:"piscina"`
	Parking        bool `json:"parqueadero"`
	PetFriendly    bool `json:"pet_friendly"`
	RoomService    bool `json:"room_service"`
	Elevator       bool `json:"ascensor"`
	PowerPlant     bool `json:"planta_energia"`
}

// LodgingPolicy holds check-in/out times and the cancellation policy text.
type LodgingPolicy struct {
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	Cancellation string `json:"cancelaciones"`
}

// LodgingPricing holds the pricing mode flags of a lodging service.
type LodgingPricing struct {
	PerNight        bool `json:"por_noche"`
	PerPerson       bool `json:"por_persona"`
	SpecialPackages bool `json:"paquetes_especiales"`
}

// LodgingExtras holds the optional add-on flags of a lodging service.
type LodgingExtras struct {
	AirportShuttle  bool `json:"transporte_aeropuerto"`
	HotelActivities bool `json:"actividades_hotel"`
	Spa             bool `json:"spa"`
	Gym             bool `json:"gimnasio"`
}

// LodgingDetail is the payload of a lodging service.
type LodgingDetail struct {
	AccommodationType string           `json:"tipo_alojamiento"`
	RoomType          string           `json:"habitacion"`
	Capacity          int              `json:"capacidad"`
	Amenities         LodgingAmenities `json:"servicios_incluidos"`
	Policy            LodgingPolicy    `json:"politica_reservas"`
	Pricing           LodgingPricing   `json:"precios"`
	Extras            LodgingExtras    `json:"extras"`
}

// DiningServiceModes are the service-mode flags of a dining establishment.
type DiningServiceModes struct {
	DineIn   bool `json:"comida_en_mesa"`
	Takeout  bool `json:"para_llevar"`
	Delivery bool `json:"domicilio"`
	Buffet   bool `json:"buffet"`
	Catering bool `json:"catering"`
}

// DiningSchedule holds the meal-window flags of a dining establishment.
type DiningSchedule struct {
	Breakfast  bool `json:"desayuno"`
	Lunch      bool `json:"almuerzo"`
	Dinner     bool `json:"cena"`
	TwentyFour bool `json:"veinticuatro_horas"`
}

// DiningExtras holds the ambiance add-on flags.
type DiningExtras struct {
	LiveMusic    bool `json:"musica_en_vivo"`
	WineTastings bool `json:"catas_de_vinos"`
	Pairings     bool `json:"maridajes"`
	TastingMenu  bool `json:"menu_degustacion"`
}

// DiningPromotions holds the promotion flags.
type DiningPromotions struct {
	HappyHour      bool `json:"happy_hour"`
	GroupDiscounts bool `json:"descuentos_por_grupo"`
	Menu           bool `json:"menu"`
}

// DiningFacilities holds accessibility and amenity flags.
type DiningFacilities struct {
	Pool           bool `json:"piscina"`
	Parking        bool `json:"parqueadero"`
	PetFriendly    bool `json:"pet_friendly"`
	RoomService    bool `json:"room_service"`
	Elevator       bool `json:"ascensor"`
	PowerPlant     bool `json:"planta_energia"`
	WheelchairRamp bool `json:"rampa_discapacitados"`
}

// DiningDetail is the payload of a dining service.
type DiningDetail struct {
	EstablishmentType string             `json:"tipo_establecimiento"`
	CuisineStyle      string             `json:"estilo_gastronomico"`
	Capacity          int                `json:"capacidad"`
	ServiceModes      DiningServiceModes `json:"servicios"`
	Schedule          DiningSchedule     `json:"horarios"`
	Extras            DiningExtras       `json:"extras"`
	Promotions        DiningPromotions   `json:"promociones"`
	Facilities        DiningFacilities   `json:"servicios_adicionales"`
}

// ExperienceInclusions are the included-item flags of a guided experience.
type ExperienceInclusions struct {
	Transport    bool `json:"transporte"`
	Guide        bool `json:"guia"`
	Meals        bool `json:"alimentacion"`
	EntranceFees bool `json:"entradas_sitios"`
}

// ExperienceAvailability holds the free-text availability windows.
type ExperienceAvailability struct {
	Dates string `json:"fechas"`
	Hours string `json:"horarios"`
}

// ExperienceLanguages holds the guide-language flags plus free text for others.
type ExperienceLanguages struct {
	Spanish bool   `json:"espanol"`
	English bool   `json:"ingles"`
	Others  string `json:"otros"`
}

// ExperienceExtras holds the optional add-on flags.
type ExperienceExtras struct {
	ProfessionalPhotos bool `json:"fotografias_profesionales"`
	TravelInsurance    bool `json:"seguros_viaje"`
}

// ExperienceDetail is the payload of a guided-experience service.
type ExperienceDetail struct {
	TourType          string                 `json:"tipo_tour"`
	Duration          string                 `json:"duracion"`
	TargetAudience    string                 `json:"grupo_objetivo"`
	Inclusions        ExperienceInclusions   `json:"incluye"`
	Difficulty        string                 `json:"dificultad"`
	Availability      ExperienceAvailability `json:"disponibilidad"`
	Languages         ExperienceLanguages    `json:"idiomas"`
	Extras            ExperienceExtras       `json:"extras"`
	Parking           bool                   `json:"parqueadero"`
	PetFriendly       bool                   `json:"pet_friendly"`
	MaxGroupSize      int                    `json:"grupo_maximo"`
	RequiredEquipment string                 `json:"equipamiento_requerido"`
	MeetingPoint      string                 `json:"punto_de_encuentro"`
}

// Defaults returns the all-defaults variant for the given vertical. Every
// boolean flag starts false; enumerated fields carry the backend's documented
// defaults. Unknown verticals yield a Detail with no variant set.
func Defaults(v Vertical) Detail {
	switch v {
	case VerticalLodging:
		return Detail{
			Vertical: VerticalLodging,
			Lodging: &LodgingDetail{
				AccommodationType: "Hotel",
				RoomType:          "Estándar",
				Capacity:          2,
				Policy: LodgingPolicy{
					CheckIn:      "15:00",
					CheckOut:     "12:00",
					Cancellation: "Cancelación gratuita hasta 24 horas antes",
				},
			},
		}
	case VerticalDining:
		return Detail{
			Vertical: VerticalDining,
			Dining: &DiningDetail{
				EstablishmentType: "Restaurante gourmet",
				CuisineStyle:      "Internacional",
			},
		}
	case VerticalExperience:
		return Detail{
			Vertical:   VerticalExperience,
			Experience: &ExperienceDetail{},
		}
	default:
		return Detail{Vertical: v}
	}
}
