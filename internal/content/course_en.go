package content

import (
	"github.com/ziadkadry99/splatdocs/internal/i18n"
	"github.com/ziadkadry99/splatdocs/internal/widgets"
)

// English returns the English course tree. It groups the extension
// chapters (10 and 11) under Part III, so it has one part fewer than the
// Spanish tree while exposing the same subsection ids.
func English() *Tree {
	return &Tree{
		Lang: i18n.English,
		Parts: []Part{
			{
				ID:          "part-1",
				Title:       "Part I: Fundamentals",
				Description: "Historical context and the explicit revolution vs NeRF.",
				Sections: []Section{
					{ID: "1", Title: "1. Intro to NVS", Subsections: []Subsection{
						{ID: "1.1", Title: "The Challenge of 3D Reconstruction", Body: Composite(Prose(en11))},
						{ID: "1.2", Title: "Historical Context", Body: Text("From classical photogrammetry (textured meshes) that fails on complex surfaces, to Radiance Fields that model light volumetrically.")},
					}},
					{ID: "2", Title: "2. The Era of Radiance Fields", Subsections: []Subsection{
						{ID: "2.0", Title: "Introduction", Body: Composite(Prose(en20))},
						{ID: "2.1", Title: "NeRF (Neural Radiance Fields)", Body: Composite(Prose(en21a), Demo(widgets.KindNeRF), Prose(en21b))},
						{ID: "2.2", Title: "The Birth of 3DGS", Body: Composite(Prose(en22))},
					}},
					{ID: "3", Title: "3. Explicit vs. Implicit", Subsections: []Subsection{
						{ID: "3.1", Title: "Representation Comparison", Body: Composite(Prose(en31a), Demo(widgets.KindComparison), Prose(en31b))},
					}},
				},
			},
			{
				ID:          "part-2",
				Title:       "Part II: Splatting Math",
				Description: "The Gaussian primitive, covariance, and differentiable rasterization.",
				Sections: []Section{
					{ID: "4", Title: "4. The 3D Gaussian Primitive", Subsections: []Subsection{
						{ID: "4.1", Title: "Mathematical Definition", Body: Composite(Prose(en41), Demo(widgets.KindGaussian))},
						{ID: "4.2", Title: "Key Attributes", Body: Text("Each 'splat' has: Position (x,y,z), Covariance (3x3 matrix defining stretch and rotation), Opacity (alpha), and Color (via Spherical Harmonics for view-dependent effects).")},
					}},
					{ID: "5", Title: "5. Projection and Appearance", Subsections: []Subsection{
						{ID: "5.0", Title: "Introduction", Body: Composite(Prose(en50))},
						{ID: "5.1", Title: "View-Dependent Appearance (SH)", Body: Composite(Prose(en51a), Demo(widgets.KindSH), Prose(en51b))},
						{ID: "5.2", Title: "3D to 2D Projection (Covariance)", Body: Composite(Prose(en52), Demo(widgets.KindProjection))},
						{ID: "5.3", Title: "Ray Space (EWA Splatting)", Body: Composite(Prose(en53))},
					}},
					{ID: "6", Title: "6. Differentiable Rasterization", Subsections: []Subsection{
						{ID: "6.1", Title: "The Rendering Pipeline", Body: Composite(Prose(en61), Demo(widgets.KindRasterization), Demo(widgets.KindPipeline))},
					}},
				},
			},
			{
				ID:          "part-3",
				Title:       "Part III: Training",
				Description: "How to optimize millions of parameters to reconstruct the scene.",
				Sections: []Section{
					{ID: "7", Title: "7. Dataset Preparation (SfM)", Subsections: []Subsection{
						{ID: "7.0", Title: "Introduction", Body: Composite(Prose(en70))},
						{ID: "7.1", Title: "Structure from Motion (SfM)", Body: Composite(Prose(en71a), Demo(widgets.KindSfM), Prose(en71b))},
						{ID: "7.2", Title: "Gaussian Initialization", Body: Composite(Prose(en72), Demo(widgets.KindInitialization))},
						{ID: "7.3", Title: "Dataset Requirements", Body: Composite(Prose(en73))},
					}},
					{ID: "8", Title: "8. Optimization (Training)", Subsections: []Subsection{
						{ID: "8.0", Title: "Introduction", Body: Composite(Prose(en80))},
						{ID: "8.1", Title: "Stochastic Gradient Descent (SGD)", Body: Composite(Prose(en81), Demo(widgets.KindOptimization))},
						{ID: "8.2", Title: "Loss Function", Body: Composite(Prose(en82), Demo(widgets.KindLoss))},
						{ID: "8.3", Title: "Gradient Calculation (Backward Pass)", Body: Composite(Prose(en83))},
					}},
					{ID: "9", Title: "9. Adaptive Density Control (ADC)", Subsections: []Subsection{
						{ID: "9.1", Title: "Refining Geometry", Body: Composite(Prose(en91), Demo(widgets.KindDensity))},
						{ID: "9.2", Title: "Pruning Strategies", Body: Composite(Prose(en92), Demo(widgets.KindPruning))},
						{ID: "9.5", Title: "Advanced ADC Improvements", Body: Composite(Prose(en95))},
					}},
					{ID: "10", Title: "10. Dynamic Scenes (4DGS)", Subsections: []Subsection{
						{ID: "10.0", Title: "Introduction", Body: Composite(Prose(en100))},
						{ID: "10.1", Title: "Spatio-Temporal Representation", Body: Composite(Prose(en101), Demo(widgets.KindDynamic4D))},
						{ID: "10.2", Title: "Technical Challenges", Body: Composite(Prose(en102))},
						{ID: "10.3", Title: "Implementations & Advances (Key Papers)", Body: Composite(Prose(en103))},
					}},
					{ID: "11", Title: "11. Compression & Optimization", Subsections: []Subsection{
						{ID: "11.1", Title: "The VRAM Bottleneck", Body: Composite(Prose(en111), Demo(widgets.KindCompression))},
						{ID: "11.2", Title: "Compression Strategies", Body: Composite(Prose(en112))},
						{ID: "11.3", Title: "Spherical Gaussians (MEGS²)", Body: Composite(Prose(en113))},
						{ID: "11.4", Title: "Training Optimization (BOGausS)", Body: Composite(Prose(en114))},
					}},
				},
			},
			{
				ID:          "part-5",
				Title:       "Part V: Practice",
				Description: "Tools, Viewers, and Applications.",
				Sections: []Section{
					{ID: "14", Title: "14. Tools", Subsections: []Subsection{
						{ID: "14.1", Title: "Ecosystem", Body: Composite(Prose(en141))},
					}},
					{ID: "15", Title: "15. PLY Format", Subsections: []Subsection{
						{ID: "15.1", Title: "Exchange Standard", Body: Text("The PLY file contains a flat list of vertices. Each vertex has custom properties: f_dc (color base), f_rest (SH coefs), opacity, scale, rot.")},
					}},
				},
			},
		},
	}
}

const en11 = `## 1. The Core Challenge: Novel View Synthesis (NVS)

**Novel View Synthesis (NVS)** is the fundamental challenge in computer vision and graphics of generating photorealistic images of a scene from arbitrary viewpoints, based solely on a set of input images.

A key capability of this process is modeling **view-dependent effects**, such as reflections and highlights, which must change realistically with the observer's perspective.

## 2. Limitations of Traditional Graphics Methods

Polygons and meshes achieve high rendering speed through rasterization, but struggle to reach the photorealism NVS requires:

- **Failure to capture complex light:** meshes struggle with continuous light transport and fine details like reflections.
- **Intricate volumes:** hair, fur or smoke are hard to represent with triangular primitives.
- **High resources:** detailed meshes need substantial memory and compute.

## 3. The Solution: Radiance Fields

A Radiance Field models the 3D environment to allow viewing from any arbitrary angle.

- **Implicit pioneer (NeRF):** remarkable quality by modeling the scene as a continuous volumetric function encoded by a neural network, but notoriously slow to render.
- **The explicit revolution (3DGS):** 3D Gaussian Splatting represents scenes with an explicit set of Gaussian primitives and became the dominant NVS method.

3DGS offers an unmatched balance of photorealistic fidelity and real-time efficiency, ideal for VR/AR, and achieves it without a neural network for the core representation.`

const en20 = `**Radiance Fields** are an innovative answer to inverse rendering and novel view synthesis. They model the 3D scene as a continuous function encoding density and color at every point in space, so realistic images can be generated from any viewpoint given 2D photographs.`

const en21a = `NeRF, introduced in 2020 by Mildenhall et al., revolutionized NVS with superior photorealistic quality.

- **Implicit representation:** geometry and appearance are encoded in the weights of an MLP.
- **5D functional model:** the MLP is queried with a spatial location (x,y,z) and a view direction (θ,ϕ).
- **MLP output:** volumetric density (σ) and view-dependent emitted color (c).`

const en21b = `### 2.1.1. NeRF Limitations: Slow Training & Rendering

- **Volumetric ray marching:** the MLP is queried at hundreds of samples along every ray.
- **Computational intensity:** millions of queries per image are the primary bottleneck.
- **Speed:** seconds per frame and training times of hours or days in the original implementations.`

const en22 = `**Kerbl et al. (SIGGRAPH 2023)**

3D Gaussian Splatting emerged to address the computational bottlenecks plaguing NeRF.

- **Paradigm shift (explicit):** the scene is a massive collection of individual 3D Gaussian primitives (position, covariance, color, opacity).
- **No neural network dependency:** it relies on mathematical optimization and rasterization.

### 2.2.1. Key Advantages

1. **Real-time rendering:** 60+ FPS, up to 900 FPS in optimized implementations.
2. **Differentiable rasterization:** tile-based and highly parallel on GPU.
3. **High visual fidelity:** matches or exceeds Mip-NeRF360 with competitive training times.

> If NeRF is an implicit sculpture carved by millions of neural queries along rays, 3DGS is an explicit painting of millions of points 'splatted' directly onto the screen at lightning speed.`

const en31a = `The fundamental difference between previous methods and 3DGS lies in how scene information is stored and processed.`

const en31b = `3DGS is **explicit**: it is basically a 'fat' and fuzzy point cloud. You can see where each Gaussian is in space, unlike NeRF, where the scene is 'hidden' inside the network weights.`

const en41 = `The fundamental unit is a 3D Gaussian function. Unlike a simple point, a Gaussian has volume and orientation. It is defined by its center, its covariance matrix (shape) and its opacity.

### Interactive Demo: Anatomy of a Gaussian

Play with the controls to see how the scale and rotation matrices affect the shape (covariance) projected in 2D.`

const en50 = `Appearance modeling and projection are the core elements that give 3DGS its high visual fidelity and exceptional rendering speed.`

const en51a = `To model how an object's color and brightness change with the viewing angle, 3DGS uses **Spherical Harmonics (SH)**.

- **Color representation:** instead of static RGB, SH coefficients encode color as a function of the viewing angle.
- **Photometric effects:** captures specularity and reflections.
- **Learnable parameters:** coefficients are optimized during training.`

const en51b = `### The Memory Problem (VRAM)

Degree 3 SH uses 16 coefficients per color channel: millions of primitives times 48 floats each means gigabytes of VRAM.

**Alternative:** Spherical Gaussians (SG). Frameworks like MEGS² use SGs, which are more compact and cut memory by 50% with similar quality.`

const en52 = `The rasterizer has to project the 3D ellipsoid (mean μ, covariance Σ) onto a flat 2D splat (μ', Σ').

- **Σ decomposition:** the matrix is decomposed into rotation (R) and scale (S) to keep it valid: Σ = RSSᵀRᵀ.
- **The 2D splat:** projection produces a 2D covariance Σ' that defines the blob's shape on screen.`

const en53 = `### The Key to Speed: EWA Volume Splatting

3DGS projection is inspired by EWA (Elliptical Weighted Average). To avoid NeRF's costly ray marching it uses an intermediate transformation called **Ray Space**:

- Aligns parallel rays to a coordinate axis.
- Enables analytic integration instead of approximate sampling.
- Allows ultra-fast direct rasterization (alpha blending).`

const en61 = `3DGS speed comes from its **tile-based** rasterizer. Unlike ray marching, which shoots a ray per pixel, rasterization projects geometry directly onto the screen.

The 3DGS pipeline follows these GPU-optimized steps:`

const en70 = `Dataset preparation is the first crucial step of the pipeline: an initial computer vision reconstruction that recovers geometry and camera poses.`

const en71a = `The 3DGS pipeline takes a set of static images as input and solves **Structure from Motion (SfM)**.

1. **Pose estimation:** SfM finds feature points and computes the position (extrinsic) and properties (intrinsic) of every camera.
2. **Initial geometry:** as a byproduct it produces a sparse point cloud with the basic scene structure.`

const en71b = `**Standard tool: COLMAP.** The default open source tool, it provides the "skeleton" for training.

*Note:* COLMAP can fail on dynamic scenes. Alternatives like DUSt3R remove the need for prior calibration.`

const en72 = `Every SfM point initializes a 3D Gaussian primitive, turning a simple point (p) into an ellipsoid with volume.

1. **Position (μ):** the location of the SfM point.
2. **Covariance (Σ):** initial size from the mean distance to the 3 nearest neighbors (KNN), avoiding holes.
3. **Color (SH):** sampled from the pixels of the images that "see" the point.`

const en73 = `### Capture Checklist

- **Visual coverage:** capture from every angle. If you didn't photograph the back, it won't exist in 3D.
- **Static scene:** nothing should move during capture.
- **Fixed lighting:** avoid auto-exposure and white balance changes.

> Think of SfM as building the skeleton of a house. 3DGS then puts the bricks and paint (the Gaussians) onto that structure.`

const en80 = `Optimization is the "learning" of the scene: millions of parameters are adjusted iteratively so that Gaussian projections match the training images.`

const en81 = `The goal is to minimize the discrepancy between rendered and real images. 3DGS uses the **Adam** optimizer on four parameter sets per Gaussian: position (μ), covariance (Σ), color (c) and opacity (α).

*Technical note:* activation functions keep values valid, for example a sigmoid maps opacity into [0,1].`

const en82 = `Visual quality comes from a composite loss: **L = (1 - λ) L1 + λ D-SSIM**, with λ = 0.2.

- **L1 (absolute error):** direct RGB difference. Accurate color, but blurry on its own.
- **D-SSIM (structure):** structural similarity, critical for perceptual sharpness.`

const en83 = `### How does it learn? (Differentiability)

The whole rasterization pipeline is **differentiable**: image error propagates backwards to every Gaussian.

- **Differentiable rasterizer:** built for an efficient backward pass.
- **Explicit gradients:** derived by hand to avoid slow automatic differentiation.
- **Unlimited:** gradients flow through any number of overlapping Gaussians.`

const en91 = `If a region has high error the system decides: do I need more small Gaussians here (**Split**)? Or do I need to fill a hole (**Clone**)?

### Densification Simulator

Use the buttons to simulate how the algorithm decides to split or clone Gaussians based on the error gradient.`

const en92 = `Pruning removes the overhead of redundant primitives. Original 3DGS runs it periodically (for example every 100 iterations) with two criteria:

1. **Opacity pruning:** removes nearly transparent Gaussians whose α drops below ϵ = 0.005. Every 3000 steps all opacities are lowered so Gaussians must "fight" for existence.
2. **Size pruning:** removes Gaussians whose max scale exceeds a share of the scene (for example 10%). Removing a large Gaussian can spawn many small ones to fill the hole.`

const en95 = `Later research proposed improvements to the original ADC.

### A. Exponential Rising Gradient Threshold

A fixed threshold is not optimal: start low (T_start = 0.0001) for fast growth and rise to T_end = 0.0004 to refine only serious errors.

### B. Significance-aware Pruning

Computes each Gaussian's real contribution to the pixel, accumulates it over all views, and prunes only when it is low, protecting subtle background detail.

### C. Pixel-Aware Densification (PixelGS)

- **Pixel counting:** divides the gradient by the number of covered pixels.
- **Depth scaling:** reduces densification in the foreground and encourages it in the background.`

const en100 = `Extending 3DGS to motion and time is known as **4D Gaussian Splatting (4DGS)**. It captures temporally changing scenes such as moving people, volumetric video or dynamic urban environments.

It is one of the key research directions after the original paper, turning 3DGS from static capture into a volumetric video method.`

const en101 = `4DGS adds a fourth dimension, time (t), next to (x,y,z). There are two main approaches:

1. **Implicit deformation:** neural networks predict changes of the base parameters at each instant. Expensive, it queries the network for every Gaussian.
2. **Explicit 4D representation:** extends the Gaussian to a hypersphere with a 4D covariance Σ4D and mean μ4D. Rotor4DGS uses rotors for complex 4D rotations.`

const en102 = `- **Temporal coherence:** primitives must keep their identity instead of flickering.
- **Real-time rendering:** reconstruction must not collapse performance.
- **Scalability:** size must not grow exponentially for long videos.

### The "Slicing-First" Bottleneck

Many methods "slice" the 4D Gaussian into a 3D one for each instant before rendering, repeating expensive work every time t changes.`

const en103 = `### Disentangled 4D Gaussian Splatting

Separates temporal from spatial variables with a **projection-first** pipeline: 343 FPS at 1352×1014 on an RTX 3090 and 4.5% less storage than full 4D matrices.

### Other Notable Methods

- **Dynamic 3D Gaussians (Luiten et al.):** persistent identity and rigid motion.
- **Rotor4DGS (Duan et al.):** 4D rotors, around 277 FPS.

### Unlocked Use Cases

Virtual production and VFX, autonomous driving simulators, large-scale digital twins, text-to-4D generation, high-speed VR and volumetric video compression.`

const en111 = `The primary challenge of 3DGS is its high **VRAM** consumption.

- **Static VRAM:** stored parameters (position, covariance, color). Around 800MB for large scenes.
- **Dynamic VRAM:** memory used while rendering (sorting, 2D projection). Disk compression does not always reduce it.`

const en112 = `1. **ProtoGS (SfM anchoring):** groups redundant primitives into prototypes using SfM points as anchors.
2. **Quantization and learned priors:** EAGLES or CompactGaussian use codebooks. Disk size shrinks, but the GPU must decode them before rendering.`

const en113 = `Replacing Spherical Harmonics with **Spherical Gaussians** is one of the most effective optimizations.

- **Compact:** a 3-lobe SG uses half the memory of a degree 3 SH.
- **No decoding:** rendered directly, saving real VRAM.
- **Unified pruning:** MEGS² jointly optimizes Gaussian removal and color simplification.`

const en114 = `Training smarter to generate less junk from the start.

- **Rising gradient threshold:** BOGausS starts at 0.0001 and raises it exponentially to 0.0004.
- **Significance-aware pruning:** a transparent Gaussian covering a large share of the background is kept.`

const en141 = `- **Luma AI / Polycam:** mobile apps to capture and train in the cloud.
- **gSplat (NerfStudio):** open source library for researchers.
- **SuperSplat / Viser:** web viewers for .ply files.
- **Lichtfeld:** professional platform to manage and view Gaussian Splats.`
