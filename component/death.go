package component

// Death tags an entity to be destroyed by the death system safely after
// game logic, through the deferred destroy path
type Death struct{}
