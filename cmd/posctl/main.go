// posctl: tareas de operación del punto de venta (migraciones, datos iniciales, estados de cuenta).
package main

func main() {
	Execute()
}
