package content

import (
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

// Spanish returns the Spanish course tree.
func Spanish() *Tree {
	return &Tree{
		Lang: i18n.Spanish,
		Parts: []Part{
			{
				ID:          "part-1",
				Title:       "Parte I: Fundamentos",
				Description: "Contexto histórico y la revolución explícita frente a NeRF.",
				Sections: []Section{
					{ID: "1", Title: "1. Introducción a NVS", Subsections: []Subsection{
						{ID: "1.1", Title: "El Desafío de la Reconstrucción 3D", Body: Composite(Prose(es11))},
						{ID: "1.2", Title: "Contexto Histórico", Body: Text("Desde la fotogrametría clásica (mallas texturizadas) que falla en superficies complejas, hasta los Radiance Fields que modelan la luz volumétricamente.")},
					}},
					{ID: "2", Title: "2. La Era de los Radiance Fields", Subsections: []Subsection{
						{ID: "2.0", Title: "Introducción", Body: Composite(Prose(es20))},
						{ID: "2.1", Title: "NeRF (Neural Radiance Fields)", Body: Composite(Prose(es21a), Demo(widgets.KindNeRF), Prose(es21b))},
						{ID: "2.2", Title: "El Nacimiento de 3DGS", Body: Composite(Prose(es22))},
					}},
					{ID: "3", Title: "3. Explícito vs. Implícito", Subsections: []Subsection{
						{ID: "3.1", Title: "Comparación de Representaciones", Body: Composite(Prose(es31a), Demo(widgets.KindComparison), Prose(es31b))},
					}},
				},
			},
			{
				ID:          "part-2",
				Title:       "Parte II: Matemática del Splatting",
				Description: "La primitiva Gaussiana, covarianza y rasterización diferenciable.",
				Sections: []Section{
					{ID: "4", Title: "4. La Primitiva Gaussiana 3D", Subsections: []Subsection{
						{ID: "4.1", Title: "Definición Matemática", Body: Composite(Prose(es41), Demo(widgets.KindGaussian))},
						{ID: "4.2", Title: "Atributos Clave", Body: Text("Cada 'splat' tiene: Posición (x,y,z), Covarianza (matriz 3x3 que define el estiramiento y rotación), Opacidad (alpha) y Color (vía Armónicos Esféricos para efectos dependientes de la vista).")},
					}},
					{ID: "5", Title: "5. Proyección y Apariencia", Subsections: []Subsection{
						{ID: "5.0", Title: "Introducción", Body: Composite(Prose(es50))},
						{ID: "5.1", Title: "Apariencia Dependiente de la Vista (SH)", Body: Composite(Prose(es51a), Demo(widgets.KindSH), Prose(es51b))},
						{ID: "5.2", Title: "Proyección 3D a 2D (Covarianza)", Body: Composite(Prose(es52), Demo(widgets.KindProjection))},
						{ID: "5.3", Title: "El Espacio de Rayo (EWA Splatting)", Body: Composite(Prose(es53))},
					}},
					{ID: "6", Title: "6. Rasterización Diferenciable", Subsections: []Subsection{
						{ID: "6.1", Title: "El Pipeline de Renderizado", Body: Composite(Prose(es61), Demo(widgets.KindRasterization), Demo(widgets.KindPipeline))},
					}},
				},
			},
			{
				ID:          "part-3",
				Title:       "Parte III: Entrenamiento",
				Description: "Cómo optimizar millones de parámetros para reconstruir la escena.",
				Sections: []Section{
					{ID: "7", Title: "7. Preparación del Dataset (SfM)", Subsections: []Subsection{
						{ID: "7.0", Title: "Introducción", Body: Composite(Prose(es70))},
						{ID: "7.1", Title: "Estructura a partir de Movimiento (SfM)", Body: Composite(Prose(es71a), Demo(widgets.KindSfM), Prose(es71b))},
						{ID: "7.2", Title: "Inicialización de Gaussias", Body: Composite(Prose(es72), Demo(widgets.KindInitialization))},
						{ID: "7.3", Title: "Requisitos del Dataset", Body: Composite(Prose(es73))},
					}},
					{ID: "8", Title: "8. Optimización (Training)", Subsections: []Subsection{
						{ID: "8.0", Title: "Introducción", Body: Composite(Prose(es80))},
						{ID: "8.1", Title: "Descenso de Gradiente Estocástico (SGD)", Body: Composite(Prose(es81), Demo(widgets.KindOptimization))},
						{ID: "8.2", Title: "Función de Pérdida (Loss)", Body: Composite(Prose(es82), Demo(widgets.KindLoss))},
						{ID: "8.3", Title: "Cálculo de Gradientes (Backward Pass)", Body: Composite(Prose(es83))},
					}},
					{ID: "9", Title: "9. Control Adaptativo de Densidad (ADC)", Subsections: []Subsection{
						{ID: "9.1", Title: "Refinando la Geometría", Body: Composite(Prose(es91), Demo(widgets.KindDensity))},
						{ID: "9.2", Title: "Estrategias de Poda (Pruning)", Body: Composite(Prose(es92), Demo(widgets.KindPruning))},
						{ID: "9.5", Title: "Mejoras Avanzadas en ADC", Body: Composite(Prose(es95))},
					}},
				},
			},
			{
				ID:          "part-4",
				Title:       "Parte IV: Extensiones y Futuro",
				Description: "4DGS, compresión y optimización.",
				Sections: []Section{
					{ID: "10", Title: "10. Escenas Dinámicas (4DGS)", Subsections: []Subsection{
						{ID: "10.0", Title: "Introducción", Body: Composite(Prose(es100))},
						{ID: "10.1", Title: "Representación Espacio-Temporal", Body: Composite(Prose(es101), Demo(widgets.KindDynamic4D))},
						{ID: "10.2", Title: "Desafíos Técnicos", Body: Composite(Prose(es102))},
						{ID: "10.3", Title: "Implementaciones y Avances (Papers Clave)", Body: Composite(Prose(es103))},
					}},
					{ID: "11", Title: "11. Compresión y Optimización", Subsections: []Subsection{
						{ID: "11.1", Title: "El Cuello de Botella de VRAM", Body: Composite(Prose(es111), Demo(widgets.KindCompression))},
						{ID: "11.2", Title: "Estrategias de Compresión", Body: Composite(Prose(es112))},
						{ID: "11.3", Title: "Spherical Gaussians (MEGS²)", Body: Composite(Prose(es113))},
						{ID: "11.4", Title: "Optimización del Entrenamiento (BOGausS)", Body: Composite(Prose(es114))},
					}},
				},
			},
			{
				ID:          "part-5",
				Title:       "Parte V: Práctica",
				Description: "Herramientas, Viewers y Aplicaciones.",
				Sections: []Section{
					{ID: "14", Title: "14. Herramientas", Subsections: []Subsection{
						{ID: "14.1", Title: "Ecosistema", Body: Composite(Prose(es141))},
					}},
					{ID: "15", Title: "15. Formato PLY", Subsections: []Subsection{
						{ID: "15.1", Title: "El Estándar de Intercambio", Body: Text("El archivo PLY contiene una lista plana de vértices. Cada vértice tiene propiedades custom: f_dc (color base), f_rest (SH coefs), opacity, scale, rot.")},
					}},
				},
			},
		},
	}
}

const es11 = `## 1. El Desafío Central: Síntesis de Nuevas Vistas (NVS)

La **Síntesis de Nuevas Vistas (NVS)** es el desafío fundamental en la visión por computadora y los gráficos que busca generar imágenes fotorrealistas de una escena desde puntos de vista arbitrarios, basándose únicamente en un conjunto de imágenes de entrada.

Una de las capacidades clave de este proceso es el modelado de **efectos dependientes de la vista**, como los reflejos y las luces brillantes, que deben cambiar de manera realista según la perspectiva del observador.

## 2. Limitaciones de los Métodos Gráficos Tradicionales

Las mallas y polígonos logran una gran velocidad de renderizado a través de la rasterización, pero tienen dificultades para lograr el fotorrealismo necesario:

- **Fallo en la captura de luz compleja:** las mallas luchan por capturar el transporte de luz continuo y los detalles finos como los reflejos.
- **Volúmenes intrincados:** el pelo, el pelaje o el humo son difíciles de representar con primitivas triangulares.
- **Recursos elevados:** las mallas muy detalladas requieren memoria y cómputo sustanciales.

## 3. La Solución: Campos de Radiancia (Radiance Fields)

Un Radiance Field modela el entorno 3D para permitir la vista desde cualquier ángulo arbitrario.

- **Pionero implícito (NeRF):** ofreció una calidad notable modelando la escena como una función volumétrica continua codificada por una red neuronal, pero su renderizado era notoriamente lento.
- **La revolución explícita (3DGS):** 3D Gaussian Splatting representa las escenas mediante un conjunto explícito de primitivas Gaussianas y se convirtió en el método dominante en NVS.

3DGS ofrece un equilibrio inigualable entre fidelidad fotorrealista y eficiencia en tiempo real, lo que lo hace ideal para VR/AR, y lo logra sin depender de una red neuronal para la representación central.`

const es20 = `Los **Campos de Radiancia** representan una solución innovadora a los desafíos del inverse rendering y la síntesis de nuevas vistas. Modelan la escena 3D como una función continua que codifica la densidad y el color en cada punto del espacio, permitiendo generar imágenes realistas desde cualquier punto de vista a partir de fotografías 2D.`

const es21a = `NeRF, introducido en 2020 por Mildenhall et al., revolucionó la NVS con una calidad fotorrealista superior.

- **Representación implícita:** la geometría y la apariencia de la escena se codifican en los pesos de una red MLP.
- **Modelo funcional 5D:** la MLP se consulta con la ubicación espacial (x,y,z) y la dirección de la vista (θ,ϕ).
- **Salida de la MLP:** la densidad volumétrica (σ) y el color emitido dependiente de la vista (c).`

const es21b = `### 2.1.1. Limitaciones de NeRF: Entrenamiento y Renderizado Lentos

- **Volumetric ray marching:** para cada rayo se consulta la MLP en cientos de puntos.
- **Intensidad computacional:** millones de consultas por imagen son el cuello de botella principal.
- **Velocidad:** segundos por frame y entrenamientos de horas o días en las implementaciones originales.`

const es22 = `**Kerbl et al. (SIGGRAPH 2023)**

3D Gaussian Splatting surgió para abordar los cuellos de botella computacionales de NeRF.

- **Cambio de paradigma (explícito):** la escena es una colección masiva de primitivas Gaussianas 3D individuales (posición, covarianza, color, opacidad).
- **Sin dependencia de redes (MLP):** se basa en optimización matemática y rasterización.

### 2.2.1. Ventajas Clave

1. **Renderizado en tiempo real:** 60+ FPS, hasta 900 FPS en implementaciones optimizadas.
2. **Rasterización diferenciable:** basada en tiles, altamente paralelizable en GPU.
3. **Alta fidelidad visual:** iguala o supera a Mip-NeRF360 con tiempos de entrenamiento competitivos.

> Si NeRF es una escultura implícita tallada mediante millones de consultas neurales a lo largo de rayos, 3DGS es una pintura explícita de millones de puntos que se 'salpican' directamente sobre la pantalla de forma ultrarrápida.`

const es31a = `La diferencia fundamental entre los métodos anteriores y 3DGS radica en cómo se almacena y procesa la información de la escena.`

const es31b = `3DGS es **explícito**: es básicamente una nube de puntos 'gorda' y difusa. Puedes ver dónde está cada gaussiana en el espacio, a diferencia de NeRF, donde la escena está 'oculta' dentro de los pesos de la red neuronal.`

const es41 = `La unidad fundamental es una función Gaussiana 3D. A diferencia de un punto simple, una Gaussiana tiene volumen y orientación. Se define por su centro, su matriz de covarianza (forma) y su opacidad.

### Demo Interactiva: Anatomía de una Gaussiana

Juega con los controles para entender cómo la matriz de escala y rotación afecta la forma (covarianza) proyectada en 2D.`

const es50 = `El modelado de la apariencia y el proceso de proyección son los elementos centrales que permiten a 3DGS lograr su alta fidelidad visual y su excepcional velocidad de renderizado.`

const es51a = `Para modelar cómo cambian el color y el brillo de un objeto según el ángulo de visión, 3DGS utiliza **Armónicos Esféricos (SH)**.

- **Representación del color:** en lugar de RGB estático, los coeficientes SH codifican el color como función del ángulo.
- **Efectos fotométricos:** captura especularidad y reflexiones.
- **Parámetros aprendibles:** los coeficientes se optimizan durante el entrenamiento.`

const es51b = `### El Problema de la Memoria (VRAM)

SH de grado 3 usa 16 coeficientes por canal de color: millones de primitivas por 48 floats cada una suponen gigabytes de VRAM.

**Alternativa:** Spherical Gaussians (SG). Frameworks como MEGS² proponen SGs, más compactos, reduciendo la memoria un 50% con calidad similar.`

const es52 = `El rasterizador necesita proyectar el elipsoide 3D (media μ y covarianza Σ) a un splat 2D plano (μ', Σ').

- **Descomposición de Σ:** la matriz se descompone en rotación (R) y escala (S) para asegurar que sea válida: Σ = RSSᵀRᵀ.
- **El splat 2D:** la proyección crea una covarianza 2D Σ' que define la forma de la mancha en la pantalla.`

const es53 = `### La clave de la velocidad: EWA Volume Splatting

La proyección de 3DGS está inspirada en EWA (Elliptical Weighted Average). Para evitar el costoso ray marching de NeRF, utiliza una transformación intermedia llamada **Espacio de Rayo**:

- Alinea los rayos paralelos a un eje de coordenadas.
- Facilita la integración analítica en lugar del muestreo aproximado.
- Permite la rasterización directa (alpha blending) ultrarrápida.`

const es61 = `La velocidad de 3DGS viene de su rasterizador basado en **tiles**. A diferencia del ray marching, que lanza rayos por cada pixel, la rasterización proyecta la geometría directamente sobre la pantalla.

El pipeline específico de 3DGS sigue estos pasos optimizados para GPU:`

const es70 = `La preparación del conjunto de datos es el primer paso crucial del pipeline. Es un proceso de reconstrucción inicial con visión por computadora para obtener la geometría y la posición de las cámaras.`

const es71a = `El pipeline de 3DGS toma como entrada un conjunto de imágenes estáticas y resuelve el problema de **Structure from Motion (SfM)**.

1. **Cálculo de pose:** SfM encuentra puntos característicos y calcula la posición (extrínseca) y las propiedades (intrínseca) de cada cámara.
2. **Geometría inicial:** como subproducto genera una nube de puntos dispersa con la estructura básica de la escena.`

const es71b = `**Herramienta estándar: COLMAP.** Es la herramienta open source usada por defecto y proporciona el "esqueleto" para el entrenamiento.

*Nota:* si la escena es dinámica, COLMAP puede fallar. Alternativas como DUSt3R eliminan la necesidad de calibración previa.`

const es72 = `Cada punto de la nube SfM inicializa una primitiva Gaussiana 3D, convirtiendo un punto simple (p) en un elipsoide con volumen.

1. **Posición (μ):** la ubicación del punto SfM.
2. **Covarianza (Σ):** tamaño inicial basado en la distancia media a los 3 vecinos más cercanos (KNN) para evitar huecos.
3. **Color (SH):** se toma de los píxeles de las imágenes que "ven" ese punto.`

const es73 = `### Checklist de Captura

- **Cobertura visual:** captura desde todos los ángulos. Si no fotografiaste la parte de atrás, no existirá en 3D.
- **Escena estática:** nada debe moverse durante la captura.
- **Iluminación fija:** evita la exposición automática y los cambios de balance de blancos.

> Piensa en SfM como construir el esqueleto de una casa. 3DGS luego pondrá los ladrillos y la pintura (las Gaussias) sobre esa estructura.`

const es80 = `La fase de optimización es el "aprendizaje" de la escena: ajusta iterativamente millones de parámetros para que las proyecciones de las Gaussias coincidan con las imágenes de entrenamiento.`

const es81 = `El objetivo es minimizar la discrepancia entre la imagen renderizada y la real. 3DGS usa el optimizador **Adam** para ajustar los 4 conjuntos de parámetros de cada Gaussiana: posición (μ), covarianza (Σ), color (c) y opacidad (α).

*Nota técnica:* se usan funciones de activación para mantener valores válidos, por ejemplo una sigmoide para la opacidad en [0,1].`

const es82 = `La calidad visual se debe a una función de pérdida compuesta: **L = (1 - λ) L1 + λ D-SSIM**, con λ = 0.2.

- **L1 (error absoluto):** diferencia directa de color RGB. Precisa en color pero borrosa por sí sola.
- **D-SSIM (estructura):** similitud estructural, crítica para mantener la nitidez perceptual.`

const es83 = `### ¿Cómo aprende? (La diferenciabilidad)

Todo el pipeline de rasterización es **diferenciable**: el error de la imagen se propaga hacia atrás hasta cada Gaussiana.

- **Rasterizador diferenciable:** diseñado para un backward pass eficiente.
- **Gradientes explícitos:** derivados manualmente para evitar la lentitud de la diferenciación automática.
- **Sin límite:** el gradiente fluye a través de un número ilimitado de Gaussias superpuestas.`

const es91 = `Si una región tiene mucho error, el sistema decide: ¿necesito más gaussias pequeñas aquí (**Split**)? ¿O necesito rellenar un hueco (**Clone**)?

### Simulador de Densificación

Usa los botones para simular cómo el algoritmo decide dividir o clonar gaussias según el gradiente de error.`

const es92 = `La poda reduce la sobrecarga de primitivas redundantes. El 3DGS original la ejecuta periódicamente (por ejemplo cada 100 iteraciones) con dos criterios:

1. **Poda por opacidad:** elimina Gaussias casi transparentes cuando α cae por debajo de ϵ = 0.005. Cada 3000 pasos se reduce la opacidad de todas para obligarlas a "luchar" por su existencia.
2. **Poda por tamaño:** elimina Gaussias cuya escala máxima excede un porcentaje de la escena (por ejemplo 10%). Eliminar una Gaussiana grande puede hacer aparecer muchas pequeñas para rellenar el hueco.`

const es95 = `La investigación posterior ha propuesto mejoras al ADC original.

### A. Umbral de Gradiente Ascendente Exponencial

Un umbral fijo no es óptimo: empieza bajo (T_start = 0.0001) para crecer rápido y sube hasta T_end = 0.0004 para refinar solo errores graves.

### B. Poda Consciente de la Significación

Calcula la contribución real de cada Gaussiana al pixel, la acumula en todas las vistas y solo poda si es baja, protegiendo detalles sutiles del fondo.

### C. Densificación Pixel-Aware (PixelGS)

- **Conteo de píxeles:** divide el gradiente por el número de píxeles cubiertos.
- **Escalado por profundidad:** reduce la densificación en primer plano y la fomenta en el fondo.`

const es100 = `La extensión de 3DGS al movimiento y el tiempo se conoce como **4D Gaussian Splatting (4DGS)**. Busca capturar escenas que cambian temporalmente, como personas en movimiento, video volumétrico o entornos urbanos dinámicos.

Es una de las direcciones clave surgidas tras el artículo original, que transforma 3DGS de un método de captura estática en uno capaz de manejar video volumétrico.`

const es101 = `4DGS introduce una cuarta dimensión, el tiempo (t), junto a (x,y,z). Hay dos enfoques principales:

1. **Deformación implícita:** redes neuronales predicen variaciones de los parámetros base en cada instante. Es costoso, requiere consultar la red por cada Gaussiana.
2. **Representación explícita 4D:** extiende la Gaussiana a una hiperesfera con covarianza Σ4D y media μ4D. Rotor4DGS usa rotores para rotaciones 4D complejas.`

const es102 = `- **Coherencia temporal:** las primitivas deben mantener su identidad en lugar de parpadear.
- **Renderizado en tiempo real:** la reconstrucción no debe colapsar el rendimiento.
- **Escalabilidad:** el tamaño no debe crecer exponencialmente en videos largos.

### El cuello de botella "Slicing-First"

Muchos métodos "rebanan" la Gaussiana 4D en una 3D para cada instante antes de renderizar, repitiendo cálculos costosos cada vez que cambia el tiempo.`

const es103 = `### Disentangled 4D Gaussian Splatting

Separa las variables temporales de las espaciales con un pipeline **projection-first**: 343 FPS a 1352×1014 en una RTX 3090 y un 4.5% menos de almacenamiento que las matrices 4D completas.

### Otros métodos notables

- **Dynamic 3D Gaussians (Luiten et al.):** identidad persistente y movimiento rígido.
- **Rotor4DGS (Duan et al.):** rotores 4D, alrededor de 277 FPS.

### Casos de uso

Producción virtual y VFX, simuladores de conducción autónoma, gemelos digitales, generación text-to-4D, VR de alta velocidad y compresión de video volumétrico.`

const es111 = `El desafío principal de 3DGS es su elevado consumo de **VRAM**.

- **VRAM estática:** parámetros almacenados (posición, covarianza, color). Unos 800MB en escenas grandes.
- **VRAM dinámica:** memoria usada durante el renderizado (ordenamiento, proyección 2D). La compresión en disco no siempre la reduce.`

const es112 = `1. **ProtoGS (anclaje por SfM):** agrupa primitivas redundantes en prototipos usando los puntos SfM como anclas.
2. **Cuantización y learned priors:** EAGLES o CompactGaussian usan codebooks. Reducen el tamaño en disco, pero la GPU debe decodificarlos antes de renderizar.`

const es113 = `Reemplazar los Armónicos Esféricos por **Spherical Gaussians** es una de las optimizaciones más efectivas.

- **Compacto:** un SG de 3 lóbulos usa la mitad de memoria que un SH de grado 3.
- **Sin decodificación:** se renderizan directamente, ahorrando VRAM real.
- **Poda unificada:** MEGS² optimiza a la vez la eliminación de gaussias y la simplificación de su color.`

const es114 = `Entrenar de manera más inteligente para generar menos basura desde el principio.

- **Umbral de gradiente ascendente:** BOGausS empieza en 0.0001 y sube exponencialmente hasta 0.0004.
- **Poda consciente de la significación:** una gaussiana transparente que cubre gran parte del fondo se conserva.`

const es141 = `- **Luma AI / Polycam:** apps móviles para capturar y entrenar en la nube.
- **gSplat (NerfStudio):** librería open source para investigadores.
- **SuperSplat / Viser:** visualizadores web para archivos .ply.
- **Lichtfeld:** plataforma profesional para gestión y visualización de Gaussian Splats.`
