package archetype

import "github.com/okian/fairway/internal/domain/scoring"

type dims = []scoring.Dimension

// taxonomy is the fixed set of twelve archetypes. CanEvolveTo and EvolvedFrom form a
// directed graph over the ids.
var taxonomy = map[ID]Archetype{
	A1: {
		ID:      A1,
		Name:    "El Bombardero Descontrolado",
		Tagline: "Mucha potencia, poca dirección",
		Description: "Generas velocidad de sobra y tus drives impresionan, pero la dispersión desde el tee " +
			"te cuesta golpes que tu potencia no merece. El juego corto cumple sin compensar las " +
			"penalizaciones, y la gestión del campo apenas ha tenido espacio para crecer.",
		Strategy: "Prioridad absoluta: controlar el face-to-path hasta dejarlo en ±2°. No busques más " +
			"distancia, busca calles. Cuando el rough castigue, sal con un hierro aunque pierdas metros.",
		DefiningStrengths: dims{scoring.Power},
		DefiningGaps:      dims{scoring.Accuracy, scoring.Consistency, scoring.Mental},
		CanEvolveTo:       []ID{A2, D3},
		EvolvedFrom:       []ID{D2},
		ProReferences:     []string{"John Daly (joven)", "Bubba Watson (antes del control)"},
	},
	A2: {
		ID:      A2,
		Name:    "El Artillero Técnico",
		Tagline: "Potencia con control emergente",
		Description: "Combinas distancia de élite con una base técnica sólida: el driver es largo y " +
			"razonablemente preciso y los hierros medios llegan a greens que otros no atacan. " +
			"La brecha está en la zona de scoring, donde el juego corto y el putting van por detrás.",
		Strategy: "Dedica la mayor parte de la práctica a cuñas y putting. Trabaja distancias fijas de " +
			"50, 75 y 100 metros midiendo la dispersión y pasa al putting de 3-5 metros cuando baje.",
		DefiningStrengths: dims{scoring.Power, scoring.LongGame, scoring.MidGame},
		DefiningGaps:      dims{scoring.ShortGame, scoring.Putting},
		CanEvolveTo:       []ID{D3},
		EvolvedFrom:       []ID{A1},
		ProReferences:     []string{"Jon Rahm", "Dustin Johnson (completo)"},
	},
	A3: {
		ID:      A3,
		Name:    "El Especialista en Distancia",
		Tagline: "Velocidad de tour, juego de campo corto",
		Description: "Tu velocidad de swing está entre las mejores del amateur, pero el contacto no la " +
			"convierte en distancia real. El smash factor bajo delata energía perdida en el impacto " +
			"y los hierros y el juego corto quedan por debajo de lo que sugiere tu HCP.",
		Strategy: "Trabaja al 80% de velocidad buscando el centro de la cara. Mejorar el smash factor " +
			"da más metros que más esfuerzo. En paralelo, consolida un carry estable con el hierro 7.",
		DefiningStrengths: dims{scoring.Power},
		DefiningGaps:      dims{scoring.MidGame, scoring.ShortGame, scoring.Accuracy},
		CanEvolveTo:       []ID{A1, A2},
		EvolvedFrom:       []ID{},
		ProReferences:     []string{"Cameron Champ (joven)", "Bryson DeChambeau (pre-técnica)"},
	},
	B1: {
		ID:      B1,
		Name:    "El Mago del Short Game",
		Tagline: "Salva golpes donde otros no pueden",
		Description: "Alrededor del green eres de élite: tu scrambling y tu tacto con las cuñas salvan " +
			"pares imposibles. El precio es llegar al green demasiado tarde, porque el juego largo " +
			"todavía no acompaña a tu mejor arma.",
		Strategy: "No toques el juego corto. Todo el foco al juego largo: ángulo de ataque con driver y " +
			"smash factor con hierros medios. Cada metro que ganes multiplica lo que ya haces cerca del green.",
		DefiningStrengths: dims{scoring.ShortGame},
		DefiningGaps:      dims{scoring.LongGame, scoring.Power},
		CanEvolveTo:       []ID{B3, D3},
		EvolvedFrom:       []ID{D1},
		ProReferences:     []string{"José María Olazábal", "Seve Ballesteros"},
	},
	B2: {
		ID:      B2,
		Name:    "El Maestro del Green",
		Tagline: "Los putts son tu superpoder",
		Description: "En el green eres otro jugador: lees bien, mantienes el ritmo y mejoras bajo " +
			"presión. Dependes demasiado del putter para salvar rondas en las que el tee y los " +
			"hierros no funcionan.",
		Strategy: "Preserva tu putting y construye el juego que lo alimenta. Los greens en regulación " +
			"son tu métrica clave; trabaja hierros 5-7 con compresión hasta reducir la dispersión.",
		DefiningStrengths: dims{scoring.Putting},
		DefiningGaps:      dims{scoring.LongGame, scoring.MidGame},
		CanEvolveTo:       []ID{B3, C2},
		EvolvedFrom:       []ID{},
		ProReferences:     []string{"Brad Faxon", "Luke Donald"},
	},
	B3: {
		ID:      B3,
		Name:    "El Artista Completo",
		Tagline: "Short game + putting como ventaja real",
		Description: "Juego corto sólido y putting por encima de la media: cuando llegas cerca del green " +
			"el hoyo suele salir bien y rara vez apuntas números grandes. Lo que falta es llegar más y mejor.",
		Strategy: "El siguiente nivel está en el tee. No necesitas ser bombardero, necesitas calles. " +
			"Apunta a un 55% de fairways con un face-to-path estable y activarás antes tu zona fuerte.",
		DefiningStrengths: dims{scoring.ShortGame, scoring.Putting},
		DefiningGaps:      dims{scoring.LongGame, scoring.Power},
		CanEvolveTo:       []ID{D3},
		EvolvedFrom:       []ID{B1, B2},
		ProReferences:     []string{"Corey Pavin", "Zach Johnson"},
	},
	C1: {
		ID:      C1,
		Name:    "El Estratega Calculador",
		Tagline: "Gestión del campo como ventaja competitiva",
		Description: "Tu técnica es moderada pero tu cabeza va por delante de tu HCP: eliges bien el palo, " +
			"juegas a zonas seguras y un mal hoyo no te arrastra. Sin algo más de técnica la " +
			"estrategia sola tiene techo.",
		Strategy: "Añade herramientas a tu cerebro. Gana carry con los hierros medios y un grado de " +
			"ángulo de ataque con el driver. Mantén tu rutina; solo suma potencia.",
		DefiningStrengths: dims{scoring.Mental, scoring.Consistency},
		DefiningGaps:      dims{scoring.Power, scoring.LongGame},
		CanEvolveTo:       []ID{C2, D3},
		EvolvedFrom:       []ID{D1},
		ProReferences:     []string{"Nick Faldo", "Bernhard Langer"},
	},
	C2: {
		ID:      C2,
		Name:    "El Jugador de Torneo",
		Tagline: "Mejor bajo presión que en práctica",
		Description: "Juegas mejor cuanto más importa el resultado. Eres consistente entre rondas, " +
			"gestionas bien los errores y tu putting aguanta la presión. Técnicamente sólido, te " +
			"falta una dimensión de élite que te diferencie.",
		Strategy: "Elige una sola dimensión con más potencial y especialízate tres meses en ella: " +
			"juego corto de percentil 85 o un driver que encuentre el 60% de las calles.",
		DefiningStrengths: dims{scoring.Mental, scoring.Consistency, scoring.Putting},
		DefiningGaps:      dims{scoring.Power},
		CanEvolveTo:       []ID{D3},
		EvolvedFrom:       []ID{C1, B2},
		ProReferences:     []string{"Sergio García", "Rory McIlroy (2011-2012)"},
	},
	C3: {
		ID:      C3,
		Name:    "El Sólido Amateur",
		Tagline: "Consistente, equilibrado, fiable",
		Description: "Sin brillar en nada tampoco tienes agujeros graves. Tu tarjeta rara vez se dispara " +
			"y tu HCP refleja fielmente tu nivel. El riesgo es el estancamiento si no eliges un área " +
			"de trabajo prioritaria.",
		Strategy: "Rompe la homogeneidad: escoge la dimensión con mejora más rápida, normalmente juego " +
			"corto o putting, y dedícale la mayor parte de la práctica durante diez semanas.",
		DefiningStrengths: dims{scoring.Consistency},
		DefiningGaps:      dims{},
		CanEvolveTo:       []ID{B3, C2, D3},
		EvolvedFrom:       []ID{D1},
		ProReferences:     []string{"Steve Stricker", "Jim Furyk"},
	},
	D1: {
		ID:      D1,
		Name:    "El Jugador en Transición",
		Tagline: "Construyendo las bases del juego",
		Description: "Varias dimensiones de tu juego mejoran a la vez, algo natural al bajar desde " +
			"handicaps altos o tras un cambio técnico. Cada hora bien orientada se nota; el error " +
			"típico es cambiar de foco cada semana.",
		Strategy: "Un foco por mes. Empieza por el fundamento más básico que falle y registra calles, " +
			"greens y putts en cada ronda para ver el progreso.",
		DefiningStrengths: dims{},
		DefiningGaps:      dims{scoring.Consistency, scoring.Mental},
		CanEvolveTo:       []ID{C3, B1, A1},
		EvolvedFrom:       []ID{},
		ProReferences:     []string{"Cualquier tour pro en sus primeros años amateur"},
	},
	D2: {
		ID:      D2,
		Name:    "El Potencial sin Pulir",
		Tagline: "Talento físico esperando técnica",
		Description: "Tienes velocidad y coordinación natural por encima de tu HCP, con mucho rendimiento " +
			"latente. La distancia entre tu potencial físico y tu tarjeta se cierra con técnica, " +
			"no con más esfuerzo.",
		Strategy: "Estructura el talento: face-to-path y ángulo de ataque primero, porque convierten " +
			"velocidad en distancia y dirección. Después, un juego corto competente.",
		DefiningStrengths: dims{scoring.Power},
		DefiningGaps:      dims{scoring.Consistency, scoring.Accuracy, scoring.ShortGame},
		CanEvolveTo:       []ID{A1, A2},
		EvolvedFrom:       []ID{},
		ProReferences:     []string{"Cameron Champ", "Tony Finau (joven)"},
	},
	D3: {
		ID:      D3,
		Name:    "El Amateur Completo",
		Tagline: "Equilibrio de alto nivel en todas las dimensiones",
		Description: "Tienes un nivel sólido en todas las dimensiones y ninguna en zona de foco. Tu juego " +
			"es completo y consistente bajo presión; las mejoras que quedan son matices sobre una " +
			"base ya construida.",
		Strategy: "La mejora viene de los márgenes. Identifica las dos dimensiones más lejos de tu HCP " +
			"objetivo, normalmente aproximación y putting, y trabájalas con análisis de datos.",
		DefiningStrengths: dims{scoring.LongGame, scoring.MidGame, scoring.ShortGame, scoring.Putting},
		DefiningGaps:      dims{},
		CanEvolveTo:       []ID{},
		EvolvedFrom:       []ID{A2, B3, C2, C3},
		ProReferences:     []string{"Rory McIlroy", "Viktor Hovland", "Scottie Scheffler"},
	},
}
