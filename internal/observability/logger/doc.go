// Package logger provee el logger Zap singleton del servicio, con scoping
// por contexto.
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Context scoping: cada request lleva su logger "scoped" con campos
//     propios (request_id, method, path) sin crear un core nuevo.
//   - Environments: "dev" consola con colores, "prod" JSON.
//
// Inicialización (una vez, en main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
//	defer logger.Sync()
//
// En handlers/servicios:
//
//	log := logger.From(ctx)
//	log.Info("certificate stored", logger.Fingerprint(fp))
package logger
