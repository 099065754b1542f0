package collect

// DependencyValidator exposes the validator used for project models.
type DependencyValidator = dependencyValidator
