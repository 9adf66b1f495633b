package listui

// RenderGroup is an indexed collection of instances sharing one pipeline.
type RenderGroup struct {
	Pipeline   PipelineID
	ShaderPath string
	Sheet      *TextureSheet
	Instances  *InstanceBufferManager
}

// NewRenderGroup creates a group for a unit-square pipeline with no texture
// sheet.
func NewRenderGroup(pipeline PipelineID, shaderPath string, capacity int, w InstanceWriter) *RenderGroup {
	return &RenderGroup{
		Pipeline:   pipeline,
		ShaderPath: shaderPath,
		Sheet:      &TextureSheet{Def: NoTextureSheet(), Dimensions: Extent{W: 1, H: 1}},
		Instances:  NewInstanceBufferManager(capacity, w),
	}
}

// AddNew adds an instance textured with sub-image sub of sheet cluster.
func (g *RenderGroup) AddNew(transform ComponentTransform, cluster, sub int, color Color) error {
	tex, err := g.Sheet.ClusterSubTransform(cluster, sub)
	if err != nil {
		return err
	}
	return g.Instances.AddInstance(transform, tex, color)
}
