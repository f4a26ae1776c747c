package ai

var defaultValence = map[string]float64{
	// English
	"love": 3.2, "loved": 3.0, "amazing": 3.0, "awesome": 3.0, "excellent": 3.0, "fantastic": 3.0,
	"wonderful": 3.0, "perfect": 3.0, "beautiful": 2.6, "happy": 2.7, "great": 2.4, "glad": 2.0,
	"grateful": 2.6, "thankful": 2.4, "thanks": 1.6, "cheerful": 2.2, "enjoy": 2.0, "enjoyed": 2.0,
	"good": 1.8, "nice": 1.8, "recommend": 1.6, "like": 1.2, "bright": 1.2, "calm": 0.8,
	"fine": 0.6, "ok": 0.3, "okay": 0.3, "works": 0.6,
	"hate": -3.0, "terrible": -3.0, "awful": -3.0, "horrible": -3.0, "worst": -3.2, "disgusting": -3.0,
	"furious": -3.0, "angry": -2.6, "sad": -2.4, "miserable": -2.8, "hopeless": -2.6, "useless": -2.4,
	"garbage": -2.8, "trash": -2.6, "frustrated": -2.2, "frustrating": -2.2, "disappointed": -2.0,
	"disappointing": -2.0, "annoyed": -1.8, "annoying": -1.8, "bad": -2.0, "poor": -1.6, "broken": -1.6,
	"boring": -1.4, "afraid": -2.0, "scared": -2.0, "worried": -1.6, "anxious": -1.6, "fails": -1.4,
	"slow": -0.8,
	// Spanish
	"amo": 3.0, "encanta": 3.0, "increíble": 3.0, "increible": 3.0, "maravilloso": 3.0, "excelente": 3.0,
	"genial": 2.6, "feliz": 2.7, "alegre": 2.2, "agradecido": 2.6, "agradecida": 2.6, "gracias": 1.6,
	"bueno": 1.8, "buena": 1.8, "bien": 1.2, "recomiendo": 1.6, "gusta": 1.2, "cumple": 0.6,
	"odio": -3.0, "pésimo": -3.2, "pesimo": -3.2, "pésima": -3.2, "basura": -2.8, "asco": -3.0,
	"furioso": -3.0, "furiosa": -3.0, "enojado": -2.6, "enojada": -2.6, "triste": -2.4, "molesto": -1.8,
	"molesta": -1.8, "decepcionado": -2.0, "decepcionada": -2.0, "malo": -2.0, "mala": -2.0,
	"inútil": -2.4, "inutil": -2.4, "desastre": -2.8, "miedo": -2.0, "preocupado": -1.6,
	"preocupada": -1.6, "fallos": -1.4, "lento": -0.8,
}

var defaultNegators = []string{
	"not", "no", "never", "don't", "dont", "doesn't", "doesnt", "isn't", "isnt", "wasn't", "wasnt",
	"can't", "cant", "won't", "wont", "nunca", "tampoco", "ni",
}

var defaultIntensifiers = map[string]float64{
	"very": 1.3, "really": 1.3, "so": 1.2, "extremely": 1.5, "absolutely": 1.4, "totally": 1.3, "super": 1.3,
	"muy": 1.3, "bastante": 1.1, "súper": 1.3, "totalmente": 1.4, "realmente": 1.3,
}
