package detail

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/reservat/provider-console/internal/common/apperrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrDetailError is the base error for codec failures.
	ErrDetailError apperrors.Error = apperrors.New("detail processing failed").SetStatusCode(http.StatusInternalServerError)
	// ErrVariantMismatch indicates the union holds no variant, or one that does
	// not match its vertical tag.
	ErrVariantMismatch apperrors.Error = ErrDetailError.New("detail variant does not match vertical").SetStatusCode(http.StatusBadRequest)
)

// Encode serializes the active variant of d into the JSON payload stored on a
// service record. Fails if the union carries no variant for its vertical tag.
func Encode(d Detail) (string, apperrors.Error) {
	var value any
	switch d.Vertical {
	case VerticalLodging:
		if d.Lodging == nil {
			return "", ErrVariantMismatch
		}
		value = d.Lodging
	case VerticalDining:
		if d.Dining == nil {
			return "", ErrVariantMismatch
		}
		value = d.Dining
	case VerticalExperience:
		if d.Experience == nil {
			return "", ErrVariantMismatch
		}
		value = d.Experience
	default:
		return "", ErrVariantMismatch
	}

	payload, err := json.MarshalToString(value)
	if err != nil {
		return "", ErrDetailError.Err(err)
	}
	return payload, nil
}

// Decode deserializes payload under the schema for vertical v. It never fails:
// an absent or malformed payload yields Defaults(v), and a partially valid one
// yields the defaults overridden field by field with whatever was recoverable.
func Decode(v Vertical, payload string) Detail {
	d := Defaults(v)
	if payload == "" || !gjson.Valid(payload) {
		return d
	}
	res := gjson.Parse(payload)
	if !res.IsObject() {
		return d
	}

	switch v {
	case VerticalLodging:
		decodeLodging(res, d.Lodging)
	case VerticalDining:
		decodeDining(res, d.Dining)
	case VerticalExperience:
		decodeExperience(res, d.Experience)
	}
	return d
}

func decodeLodging(res gjson.Result, out *LodgingDetail) {
	strField(res, "tipo_alojamiento", &out.AccommodationType)
	strField(res, "habitacion", &out.RoomType)
	intField(res, "capacidad", &out.Capacity)

	boolField(res, "servicios_incluidos.desayuno", &out.Amenities.Breakfast)
	boolField(res, "servicios_incluidos.wifi", &out.Amenities.WiFi)
	boolField(res, "servicios_incluidos.aire_acondicionado", &out.Amenities.AirConditioner)
	boolField(res, "servicios_incluidos.tv", &out.Amenities.TV)
	boolField(res, "servicios_incluidos.caja_fuerte", &out.Amenities.Safe)
	boolField(res, "servicios_incluidos.piscina", &out.Amenities.Pool)
	boolField(res, "servicios_incluidos.parqueadero", &out.Amenities.Parking)
	boolField(res, "servicios_incluidos.pet_friendly", &out.Amenities.PetFriendly)
	boolField(res, "servicios_incluidos.room_service", &out.Amenities.RoomService)
	boolField(res, "servicios_incluidos.ascensor", &out.Amenities.Elevator)
	boolField(res, "servicios_incluidos.planta_energia", &out.Amenities.PowerPlant)

	strField(res, "politica_reservas.check_in", &out.Policy.CheckIn)
	strField(res, "politica_reservas.check_out", &out.Policy.CheckOut)
	strField(res, "politica_reservas.cancelaciones", &out.Policy.Cancellation)

	boolField(res, "precios.por_noche", &out.Pricing.PerNight)
	boolField(res, "precios.por_persona", &out.Pricing.PerPerson)
	boolField(res, "precios.paquetes_especiales", &out.Pricing.SpecialPackages)

	boolField(res, "extras.transporte_aeropuerto", &out.Extras.AirportShuttle)
	boolField(res, "extras.actividades_hotel", &out.Extras.HotelActivities)
	boolField(res, "extras.spa", &out.Extras.Spa)
	boolField(res, "extras.gimnasio", &out.Extras.Gym)
}

func decodeDining(res gjson.Result, out *DiningDetail) {
	strField(res, "tipo_establecimiento", &out.EstablishmentType)
	strField(res, "estilo_gastronomico", &out.CuisineStyle)
	intField(res, "capacidad", &out.Capacity)

	boolField(res, "servicios.comida_en_mesa", &out.ServiceModes.DineIn)
	boolField(res, "servicios.para_llevar", &out.ServiceModes.Takeout)
	boolField(res, "servicios.domicilio", &out.ServiceModes.Delivery)
	boolField(res, "servicios.buffet", &out.ServiceModes.Buffet)
	boolField(res, "servicios.catering", &out.ServiceModes.Catering)

	boolField(res, "horarios.desayuno", &out.Schedule.Breakfast)
	boolField(res, "horarios.almuerzo", &out.Schedule.Lunch)
	boolField(res, "horarios.cena", &out.Schedule.Dinner)
	boolField(res, "horarios.veinticuatro_horas", &out.Schedule.TwentyFour)

	boolField(res, "extras.musica_en_vivo", &out.Extras.LiveMusic)
	boolField(res, "extras.catas_de_vinos", &out.Extras.WineTastings)
	boolField(res, "extras.maridajes", &out.Extras.Pairings)
	boolField(res, "extras.menu_degustacion", &out.Extras.TastingMenu)

	boolField(res, "promociones.happy_hour", &out.Promotions.HappyHour)
	boolField(res, "promociones.descuentos_por_grupo", &out.Promotions.GroupDiscounts)
	boolField(res, "promociones.menu", &out.Promotions.Menu)

	boolField(res, "servicios_adicionales.piscina", &out.Facilities.Pool)
	boolField(res, "servicios_adicionales.parqueadero", &out.Facilities.Parking)
	boolField(res, "servicios_adicionales.pet_friendly", &out.Facilities.PetFriendly)
	boolField(res, "servicios_adicionales.room_service", &out.Facilities.RoomService)
	boolField(res, "servicios_adicionales.ascensor", &out.Facilities.Elevator)
	boolField(res, "servicios_adicionales.planta_energia", &out.Facilities.PowerPlant)
	boolField(res, "servicios_adicionales.rampa_discapacitados", &out.Facilities.WheelchairRamp)
}

func decodeExperience(res gjson.Result, out *ExperienceDetail) {
	strField(res, "tipo_tour", &out.TourType)
	strField(res, "duracion", &out.Duration)
	strField(res, "grupo_objetivo", &out.TargetAudience)
	strField(res, "dificultad", &out.Difficulty)

	boolField(res, "incluye.transporte", &out.Inclusions.Transport)
	boolField(res, "incluye.guia", &out.Inclusions.Guide)
	boolField(res, "incluye.alimentacion", &out.Inclusions.Meals)
	boolField(res, "incluye.entradas_sitios", &out.Inclusions.EntranceFees)

	strField(res, "disponibilidad.fechas", &out.Availability.Dates)
	strField(res, "disponibilidad.horarios", &out.Availability.Hours)

	boolField(res, "idiomas.espanol", &out.Languages.Spanish)
	boolField(res, "idiomas.ingles", &out.Languages.English)
	strField(res, "idiomas.otros", &out.Languages.Others)

	boolField(res, "extras.fotografias_profesionales", &out.Extras.ProfessionalPhotos)
	boolField(res, "extras.seguros_viaje", &out.Extras.TravelInsurance)

	boolField(res, "parqueadero", &out.Parking)
	boolField(res, "pet_friendly", &out.PetFriendly)
	intField(res, "grupo_maximo", &out.MaxGroupSize)
	strField(res, "equipamiento_requerido", &out.RequiredEquipment)
	strField(res, "punto_de_encuentro", &out.MeetingPoint)
}

// strField overrides *out when the path holds a JSON string.
func strField(res gjson.Result, path string, out *string) {
	if f := res.Get(path); f.Type == gjson.String {
		*out = f.String()
	}
}

// intField overrides *out when the path holds a JSON number.
func intField(res gjson.Result, path string, out *int) {
	if f := res.Get(path); f.Type == gjson.Number {
		*out = int(f.Int())
	}
}

// boolField overrides *out when the path holds a JSON boolean.
func boolField(res gjson.Result, path string, out *bool) {
	if f := res.Get(path); f.IsBool() {
		*out = f.Bool()
	}
}
