package gemini

import (
	"strings"

	"github.com/Desarso/hapticvision/models"
	"google.golang.org/genai"
)

// ConvertToGeminiFunctionDeclarations converts standard FunctionDeclarations to the SDK's schema types
func ConvertToGeminiFunctionDeclarations(fds []models.FunctionDeclaration) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, len(fds))
	for i, fd := range fds {
		params := &genai.Schema{
			Type:       schemaType(fd.Parameters.Type),
			Properties: make(map[string]*genai.Schema, len(fd.Parameters.Properties)),
			Required:   append([]string(nil), fd.Parameters.Required...),
		}

		// Default type to "object" if not set
		if params.Type == genai.TypeUnspecified {
			params.Type = genai.TypeObject
		}

		for name, prop := range fd.Parameters.Properties {
			params.Properties[name] = &genai.Schema{
				Type:        schemaType(prop.Type),
				Enum:        append([]string(nil), prop.Enum...),
				Description: prop.Description,
			}
		}

		result[i] = &genai.FunctionDeclaration{
			Name:        fd.Name,
			Description: fd.Description,
			Parameters:  params,
		}
	}
	return result
}

// NewToolSpec bundles the declarations into the single Tool entry sent with
// every tool-calling request.
func NewToolSpec(fds []models.FunctionDeclaration) []*genai.Tool {
	return []*genai.Tool{{FunctionDeclarations: ConvertToGeminiFunctionDeclarations(fds)}}
}

func schemaType(t string) genai.Type {
	switch strings.ToLower(t) {
	case "object":
		return genai.TypeObject
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeUnspecified
	}
}
