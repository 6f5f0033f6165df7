package common_tools

import (
	"github.com/Desarso/hapticvision/models"
)

// NavigateTool returns the declaration for switching the app to another screen.
func NavigateTool() models.FunctionDeclaration {
	return models.FunctionDeclaration{
		Name:        models.ToolNavigate,
		Description: "Navegar a una pantalla específica de la aplicación.",
		Parameters: models.Parameters{
			Type: "object",
			Properties: map[string]models.Property{
				"screen": {
					Type:        "string",
					Enum:        models.EnumValues(models.Screens),
					Description: "La pantalla a la que se desea ir.",
				},
			},
			Required: []string{"screen"},
		},
	}
}

// HapticFeedbackTool returns the declaration for an emotion-coded vibration.
func HapticFeedbackTool() models.FunctionDeclaration {
	return models.FunctionDeclaration{
		Name:        models.ToolHapticFeedback,
		Description: "Generar una vibración háptica correspondiente a una emoción.",
		Parameters: models.Parameters{
			Type: "object",
			Properties: map[string]models.Property{
				"emotion": {
					Type:        "string",
					Enum:        models.EnumValues(models.Emotions),
					Description: "La emoción para generar la vibración.",
				},
			},
			Required: []string{"emotion"},
		},
	}
}

// CameraControlTool returns the declaration for camera actions.
func CameraControlTool() models.FunctionDeclaration {
	return models.FunctionDeclaration{
		Name:        models.ToolCameraControl,
		Description: "Controlar la cámara (ej. cambiar entre frontal y trasera).",
		Parameters: models.Parameters{
			Type: "object",
			Properties: map[string]models.Property{
				"action": {
					Type:        "string",
					Enum:        models.EnumValues(models.CameraActions),
					Description: "La acción a realizar en la cámara.",
				},
			},
			Required: []string{"action"},
		},
	}
}

// DefaultTools returns the full voice-command catalog. A fresh slice is built
// on every call so callers can never mutate a shared copy.
func DefaultTools() []models.FunctionDeclaration {
	return []models.FunctionDeclaration{
		NavigateTool(),
		HapticFeedbackTool(),
		CameraControlTool(),
	}
}
