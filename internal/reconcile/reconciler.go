package reconcile

import (
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"strings"

	"github.com/syncgen/syncgen/internal/generator"
	"github.com/syncgen/syncgen/internal/models"
	"github.com/syncgen/syncgen/internal/templates"
	"github.com/syncgen/syncgen/internal/utils/fileops"
)

// Outcome is the result of reconciling one model. For New and Changed it
// carries the staged file content; nothing is written here. The pipeline
// commits staged content only after the whole per-API sub-pipeline succeeds.
type Outcome struct {
	Result  models.DiffResult
	Path    string // stored model file path
	Content string // staged content, set for New and Changed
	Err     error  // set when Result is DiffError
}

// Reconciler diffs freshly generated model definitions against the stored,
// hand-augmented copies and merges non-destructively.
type Reconciler struct {
	ops       *fileops.FileOps
	modelsDir string
}

// NewReconciler creates a reconciler writing stored models under modelsDir.
func NewReconciler(modelsDir string, ops *fileops.FileOps) *Reconciler {
	if ops == nil {
		ops = fileops.NewFileOps()
	}
	return &Reconciler{ops: ops, modelsDir: modelsDir}
}

// StoredPath returns where the stored model file for modelName lives.
func (r *Reconciler) StoredPath(modelName string) string {
	return filepath.Join(r.modelsDir, strings.ToLower(modelName)+".go")
}

// Reconcile compares the generated definition of modelName (under its
// resolved exported name) against the stored file. Errors are scoped to this
// one model; sibling models keep reconciling.
func (r *Reconciler) Reconcile(artifact *models.ArtifactSet, modelName string, resolved models.ResolvedName) Outcome {
	canonical := generator.PascalCase(modelName)
	storedPath := r.StoredPath(modelName)

	freshBlock, err := r.findGeneratedStruct(artifact, resolved.Name)
	if err != nil {
		return r.fail(artifact.APIName, modelName, storedPath, "cannot locate generated definition", err)
	}

	// A pure rename must never be reported as a change, so the canonical
	// name is applied before any comparison.
	freshBlock = RenameType(freshBlock, resolved.Name, canonical)

	storedRaw, err := os.ReadFile(storedPath)
	if os.IsNotExist(err) {
		content, synthErr := r.synthesize(artifact.APIName, canonical, freshBlock)
		if synthErr != nil {
			return r.fail(artifact.APIName, modelName, storedPath, "cannot synthesize model file", synthErr)
		}
		return Outcome{Result: models.DiffNew, Path: storedPath, Content: content}
	}
	if err != nil {
		return r.fail(artifact.APIName, modelName, storedPath, "cannot read stored model", err)
	}
	stored := string(storedRaw)

	storedBlock, start, end, ok := StructBlock(stored, canonical)
	if !ok {
		return r.fail(artifact.APIName, modelName, storedPath,
			fmt.Sprintf("stored file has no struct %s", canonical), nil)
	}

	if Normalize(freshBlock) == Normalize(storedBlock) {
		return Outcome{Result: models.DiffUnchanged, Path: storedPath}
	}

	content := r.splice(stored, freshBlock, start, end)
	return Outcome{Result: models.DiffChanged, Path: storedPath, Content: content}
}

// splice substitutes only the struct block; every other byte of the stored
// file survives verbatim, including declarations sitting between the struct
// and the first func. Without a manual boundary the whole file is generated
// region and is fully replaced.
func (r *Reconciler) splice(stored, freshBlock string, structStart, structEnd int) string {
	if ManualBoundary(stored) < 0 {
		return stored[:structStart] + freshBlock + "\n"
	}
	return stored[:structStart] + freshBlock + stored[structEnd:]
}

// findGeneratedStruct scans the artifact files for the struct declaration of
// the resolved name.
func (r *Reconciler) findGeneratedStruct(artifact *models.ArtifactSet, typeName string) (string, error) {
	for _, rel := range artifact.Files {
		path := filepath.Join(artifact.Root, rel)
		source, err := r.ops.ReadFile(path)
		if err != nil {
			continue
		}
		if block, _, _, ok := StructBlock(source, typeName); ok {
			return block, nil
		}
	}
	return "", fmt.Errorf("no struct %s in generated output %s", typeName, artifact.Root)
}

// synthesize builds a brand-new stored model file: header, struct, and a
// default-value constructor enumerating every field.
func (r *Reconciler) synthesize(apiName, canonical, structBlock string) (string, error) {
	fields, err := r.constructorFields(structBlock)
	if err != nil {
		return "", err
	}

	rendered, err := templates.RenderStoredModel(templates.StoredModelData{
		APIName:   apiName,
		ModelName: canonical,
		StructDef: structBlock,
		Fields:    fields,
	})
	if err != nil {
		return "", err
	}
	return templates.Format(strings.ToLower(canonical)+".go", rendered)
}

// constructorFields parses the struct block and derives a default-value
// literal for every field.
func (r *Reconciler) constructorFields(structBlock string) ([]templates.ModelField, error) {
	file, err := r.ops.ParseGoSource("generated.go", "package models\n\n"+structBlock)
	if err != nil {
		return nil, err
	}

	structType := firstStructType(file)
	if structType == nil {
		return nil, fmt.Errorf("generated block is not a struct declaration")
	}

	var fields []templates.ModelField
	for _, field := range structType.Fields.List {
		zero := zeroLiteral(field.Type)
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			fields = append(fields, templates.ModelField{Name: name.Name, Zero: zero})
		}
	}
	return fields, nil
}

func firstStructType(file *ast.File) *ast.StructType {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if structType, ok := typeSpec.Type.(*ast.StructType); ok {
				return structType
			}
		}
	}
	return nil
}

// zeroLiteral returns a Go literal for the default value of a field type.
func zeroLiteral(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		switch t.Name {
		case "string":
			return `""`
		case "bool":
			return "false"
		case "int", "int8", "int16", "int32", "int64",
			"uint", "uint8", "uint16", "uint32", "uint64",
			"byte", "rune", "uintptr":
			return "0"
		case "float32", "float64", "complex64", "complex128":
			return "0"
		default:
			return t.Name + "{}"
		}
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return pkg.Name + "." + t.Sel.Name + "{}"
		}
		return "nil"
	case *ast.StarExpr, *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType, *ast.InterfaceType:
		return "nil"
	default:
		return "nil"
	}
}

func (r *Reconciler) fail(api, model, path, message string, cause error) Outcome {
	return Outcome{
		Result: models.DiffError,
		Path:   path,
		Err:    models.NewReconciliationError(api, model, message, cause),
	}
}
