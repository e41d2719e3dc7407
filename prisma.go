// Package prisma é a raiz do bemestar: um cliente ORM no estilo Prisma para
// o rastreador de bem-estar (refeições, hidratação, sono e receitas).
//
// O cliente fica em db; o binário prisma em cmd/prisma:
//
//	prisma validate --watch   # valida o schema a cada alteração
//	prisma generate           # gera db/models e db/metadata.go
//	prisma migrate dev --name receitas
//	prisma db seed            # carrega prisma/seed.yaml
//
// Uso do cliente:
//
//	client, err := db.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	hoje, err := client.RegistroHidratacao.Aggregate().
//	    Where(inputs.RegistroHidratacaoWhereInput{
//	        UsuarioID:    filters.Equals(usuarioID),
//	        RegistradoEm: filters.Between(inicio, inicio.AddDate(0, 0, 1)),
//	    }).
//	    Sum("quantidadeMl").
//	    Exec(ctx)
package prisma

// Version é a versão do cliente e do CLI
const Version = "0.3.0"
